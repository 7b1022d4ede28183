package sim

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSchedule_PopsByTime(t *testing.T) {
	var s Schedule
	s.Push(Event{Time: 3.0, Kind: Arrival})
	s.Push(Event{Time: 1.0, Kind: Arrival})
	s.Push(Event{Time: 2.0, Kind: Arrival})

	var times []float64
	for s.Len() > 0 {
		ev, ok := s.Pop()
		require.True(t, ok)
		times = append(times, ev.Time)
	}
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, times)
}

func TestSchedule_EqualTimesPopInPushOrder(t *testing.T) {
	// Equal-time ordering is part of the contract: fixtures where a
	// passage and an arrival land on the same instant depend on it.
	var s Schedule
	a := &Queue{ID: "a"}
	b := &Queue{ID: "b"}
	c := &Queue{ID: "c"}
	s.Push(Event{Time: 5.0, Kind: Passage, Queue: a})
	s.Push(Event{Time: 5.0, Kind: Departure, Queue: b})
	s.Push(Event{Time: 5.0, Kind: Passage, Queue: c})

	var order []string
	for s.Len() > 0 {
		ev, ok := s.Pop()
		require.True(t, ok)
		order = append(order, ev.Queue.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSchedule_InterleavedTiesKeepPushOrder(t *testing.T) {
	// A tie pushed around other pops still resolves by push order.
	var s Schedule
	first := &Queue{ID: "first"}
	second := &Queue{ID: "second"}
	s.Push(Event{Time: 2.0, Kind: Passage, Queue: first})
	s.Push(Event{Time: 1.0, Kind: Arrival})

	ev, _ := s.Pop()
	assert.Equal(t, Arrival, ev.Kind)

	s.Push(Event{Time: 2.0, Kind: Passage, Queue: second})
	ev, _ = s.Pop()
	assert.Equal(t, "first", ev.Queue.ID)
	ev, _ = s.Pop()
	assert.Equal(t, "second", ev.Queue.ID)
}

func TestSchedule_PopEmpty(t *testing.T) {
	var s Schedule
	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push(Event{Time: 1.0, Kind: Arrival})
	_, ok = s.Pop()
	assert.True(t, ok)
	_, ok = s.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSchedule_PeekDoesNotRemove(t *testing.T) {
	var s Schedule
	_, ok := s.Peek()
	assert.False(t, ok)

	s.Push(Event{Time: 4.0, Kind: Arrival})
	s.Push(Event{Time: 2.0, Kind: Arrival})

	ev, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 2.0, ev.Time)
	assert.Equal(t, 2, s.Len())

	ev, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2.0, ev.Time)
	assert.Equal(t, 1, s.Len())
}

func TestSchedule_PopsNonDecreasing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s Schedule
		times := rapid.SliceOfN(rapid.Float64Range(0, 1e6), 1, 200).Draw(t, "times")
		for _, tm := range times {
			s.Push(Event{Time: tm, Kind: Arrival})
		}

		sorted := append([]float64(nil), times...)
		sort.Float64s(sorted)
		for i, want := range sorted {
			ev, ok := s.Pop()
			require.True(t, ok)
			require.Equal(t, want, ev.Time, "pop %d", i)
		}
		_, ok := s.Pop()
		require.False(t, ok)
	})
}

func TestSchedule_MatchesModel(t *testing.T) {
	// Model-based check against a plain slice: Pop always returns the
	// minimum pending time, whatever the push/pop interleaving.
	rapid.Check(t, func(t *rapid.T) {
		var s Schedule
		var model []float64

		t.Repeat(map[string]func(*rapid.T){
			"push": func(t *rapid.T) {
				tm := rapid.Float64Range(0, 1000).Draw(t, "time")
				s.Push(Event{Time: tm, Kind: Arrival})
				model = append(model, tm)
				require.Equal(t, len(model), s.Len())
			},
			"pop": func(t *rapid.T) {
				if len(model) == 0 {
					_, ok := s.Pop()
					require.False(t, ok)
					return
				}
				minIdx := 0
				for i, v := range model {
					if v < model[minIdx] {
						minIdx = i
					}
				}
				ev, ok := s.Pop()
				require.True(t, ok)
				require.Equal(t, model[minIdx], ev.Time)
				model = append(model[:minIdx], model[minIdx+1:]...)
			},
		})
	})
}
