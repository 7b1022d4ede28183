package sim

import "cmp"

// EventKind enumerates the three transitions that drive the simulation.
type EventKind int

const (
	// Arrival is an external client reaching the entry queue.
	Arrival EventKind = iota
	// Passage is a service completion whose client moves to another queue.
	Passage
	// Departure is a service completion at a terminal queue; the client
	// leaves the network.
	Departure
)

func (k EventKind) String() string {
	switch k {
	case Arrival:
		return "arrival"
	case Passage:
		return "passage"
	case Departure:
		return "departure"
	}
	return "unknown"
}

// Event is one pending transition: a moment in virtual time and the kind
// of state change due then. Events are immutable once pushed and consumed
// exactly once; they carry no client identity, only the queue whose
// service completion they represent. Queue is nil for Arrival events,
// which always target the entry queue.
type Event struct {
	Time  float64
	Kind  EventKind
	Queue *Queue

	seq uint64 // push order, assigned by Schedule.Push
}

// Cmp orders events by time, then by push order. The sequence component
// makes the order total, so events sharing a timestamp pop first-in
// first-out and a run never depends on heap internals.
func (e *Event) Cmp(o *Event) int {
	if c := cmp.Compare(e.Time, o.Time); c != 0 {
		return c
	}
	return cmp.Compare(e.seq, o.seq)
}
