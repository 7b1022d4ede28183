package sim

import (
	"github.com/addrummond/heap"
)

// Schedule is the time-ordered multiset of pending events, backed by a
// pairing heap keyed by (time, push order). Pop returns events in
// non-decreasing time order; among equal timestamps, in the order they
// were pushed. The zero value is an empty schedule ready for use.
type Schedule struct {
	heap heap.Heap[Event, heap.Min]
	seq  uint64
	size int
}

// Push inserts ev, stamping it with the next sequence number.
func (s *Schedule) Push(ev Event) {
	s.seq++
	ev.seq = s.seq
	heap.PushOrderable(&s.heap, ev)
	s.size++
}

// Pop removes and returns the earliest pending event. The second return
// is false when the schedule is empty.
func (s *Schedule) Pop() (Event, bool) {
	ev, ok := heap.PopOrderable(&s.heap)
	if ok {
		s.size--
	}
	return ev, ok
}

// Peek returns the earliest pending event without removing it.
func (s *Schedule) Peek() (Event, bool) {
	return heap.Peek(&s.heap)
}

// Len returns the number of pending events.
func (s *Schedule) Len() int {
	return s.size
}
