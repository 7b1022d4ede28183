package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator owns the virtual clock, the event schedule, the queues, and
// the sequence source, and applies the transition rules that turn one
// event into queue-state mutations and follow-up events. All mutable
// state is confined to the instance; drive it from a single goroutine.
//
// The engine is passive: it exposes Step and the driver owns the run loop
// and the termination policy. Draws() gives an exact budget to stop on,
// since every random decision flows through the counted source.
type Simulator struct {
	clock    float64
	start    float64
	schedule Schedule
	queues   []*Queue // declaration order
	byID     map[string]*Queue
	entry    *Queue
	arrival  Range
	src      Source
	draws    int64
}

// New builds a Simulator from cfg, failing fast on any configuration
// error. The returned engine has an empty schedule; call Start (or
// StartAt) before stepping.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := NewSource(cfg.RNG)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		clock:   cfg.StartTime,
		start:   cfg.StartTime,
		queues:  make([]*Queue, 0, len(cfg.Queues)),
		byID:    make(map[string]*Queue, len(cfg.Queues)),
		arrival: cfg.Arrival,
		src:     src,
	}
	for _, qc := range cfg.Queues {
		q := newQueue(qc)
		s.queues = append(s.queues, q)
		s.byID[q.ID] = q
	}
	// Second pass: resolve outbound IDs to queue pointers. Declaration
	// order carries over; Route depends on it.
	for i, qc := range cfg.Queues {
		for _, oc := range qc.Outbound {
			s.queues[i].Outbound = append(s.queues[i].Outbound, Branch{
				Dest: s.byID[oc.To],
				Prob: oc.Prob,
			})
		}
	}
	s.entry = s.byID[cfg.EntryQueue]
	logrus.Debugf("sim: built network of %d queues, entry %q, clock at %v",
		len(s.queues), s.entry.ID, s.clock)
	return s, nil
}

// Start seeds the event chain: it schedules the first external arrival at
// the start time plus one sampled interarrival delay, consuming exactly
// one draw. This is how production runs begin.
func (s *Simulator) Start() {
	s.scheduleArrival()
}

// StartAt seeds the event chain with an arrival at the absolute time t,
// consuming no draw. Fixtures use it to begin a run at a known instant
// without spending a replay value.
func (s *Simulator) StartAt(t float64) {
	s.schedule.Push(Event{Time: t, Kind: Arrival})
}

// Step consumes the earliest pending event: advance the clock to it,
// then apply its transition. Stepping an empty schedule means Start was
// never called or the arrival chain was broken, and an event behind the
// clock means the schedule was corrupted; both are defects in the caller
// or the engine, not inputs, so they panic.
func (s *Simulator) Step() {
	ev, ok := s.schedule.Pop()
	if !ok {
		panic("sim: schedule is empty, nothing to step")
	}
	if ev.Time < s.clock {
		panic(fmt.Sprintf("sim: clock went backwards: event at %v, clock at %v", ev.Time, s.clock))
	}
	s.advance(ev.Time)
	switch ev.Kind {
	case Arrival:
		logrus.Tracef("sim: [t=%v] arrival at %q", s.clock, s.entry.ID)
		s.arrive()
	case Passage:
		logrus.Tracef("sim: [t=%v] passage out of %q", s.clock, ev.Queue.ID)
		s.pass(ev.Queue)
	case Departure:
		logrus.Tracef("sim: [t=%v] departure from %q", s.clock, ev.Queue.ID)
		s.depart(ev.Queue)
	}
}

// advance is the clock-advance rule: attribute the interval since the
// previous event to every queue's current occupancy level, then move the
// clock. It runs before any occupancy mutation.
func (s *Simulator) advance(t float64) {
	dt := t - s.clock
	for _, q := range s.queues {
		q.accumulate(dt)
	}
	s.clock = t
}

// draw takes the next value from the sequence source and counts it.
func (s *Simulator) draw() float64 {
	s.draws++
	return s.src.Next()
}

func (s *Simulator) scheduleArrival() {
	s.schedule.Push(Event{
		Time: s.clock + s.arrival.Sample(s.draw()),
		Kind: Arrival,
	})
}

// scheduleCompletion schedules the service completion a newly busy server
// at q will produce: a Passage when the client moves on inside the
// network, a Departure when q is terminal.
func (s *Simulator) scheduleCompletion(q *Queue) {
	kind := Passage
	if q.Terminal() {
		kind = Departure
	}
	s.schedule.Push(Event{
		Time:  s.clock + q.Service.Sample(s.draw()),
		Kind:  kind,
		Queue: q,
	})
}

// arrive admits an external client at the entry queue, or counts a loss
// when it is full, and unconditionally schedules the next arrival so the
// chain never breaks. A client that finds a free server (occupancy at or
// below the server count after admission) starts service immediately;
// otherwise it waits and consumes no draw. The service draw, when taken,
// precedes the arrival draw.
func (s *Simulator) arrive() {
	if s.entry.IsFull() {
		s.entry.Losses++
		logrus.Debugf("sim: [t=%v] entry %q full, client lost (%d so far)",
			s.clock, s.entry.ID, s.entry.Losses)
	} else {
		s.entry.Occupancy++
		if s.entry.Occupancy <= s.entry.Servers {
			s.scheduleCompletion(s.entry)
		}
	}
	s.scheduleArrival()
}

// pass moves a client whose service at q just completed. The freed server
// picks up the next waiting client, if any, before the move: when the
// decremented occupancy still reaches the server count, another
// completion is scheduled for q. The destination comes from one counted
// routing draw. A full destination costs the client (the destination's
// loss), otherwise it is admitted there like any other arrival.
//
// Self-loops fall out of the ordering: q's occupancy is already
// decremented when the destination admission check runs, so a queue
// routing to itself re-admits its own client rather than losing it.
func (s *Simulator) pass(q *Queue) {
	q.Occupancy--
	if q.Occupancy >= q.Servers {
		s.scheduleCompletion(q)
	}
	dest := q.Route(s.draw())
	if dest.IsFull() {
		dest.Losses++
		logrus.Debugf("sim: [t=%v] %q -> %q blocked, client lost (%d so far)",
			s.clock, q.ID, dest.ID, dest.Losses)
		return
	}
	dest.Occupancy++
	if dest.Occupancy <= dest.Servers {
		s.scheduleCompletion(dest)
	}
}

// depart releases a client from terminal queue q out of the network and
// starts the next waiting client on the freed server, if any.
func (s *Simulator) depart(q *Queue) {
	q.Occupancy--
	if q.Occupancy >= q.Servers {
		s.scheduleCompletion(q)
	}
}

// Clock returns the current virtual time.
func (s *Simulator) Clock() float64 {
	return s.clock
}

// Draws returns how many values have been taken from the sequence source
// so far. Drivers use it as their termination budget.
func (s *Simulator) Draws() int64 {
	return s.draws
}

// Pending returns the number of scheduled events.
func (s *Simulator) Pending() int {
	return s.schedule.Len()
}

// Queue returns the queue with the given id, or nil when no such queue
// exists. Callers outside the engine must treat the returned state as
// read-only.
func (s *Simulator) Queue(id string) *Queue {
	return s.byID[id]
}
