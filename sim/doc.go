// Package sim implements a discrete-event simulator for networks of
// finite-capacity, multi-server queues under probabilistic routing.
//
// Clients arrive from outside at a designated entry queue, hold a server
// for a sampled service delay, move between queues along weighted outbound
// branches, and eventually leave the network from a terminal queue. A queue
// that is full at the moment a client shows up loses that client; losses
// are counted, never queued. The observable output of a run is raw
// accumulator state: per queue, the total virtual time spent at each
// occupancy level, plus the loss count.
//
// # Reading Guide
//
// Three files carry the kernel:
//
//   - event.go: the three event kinds (Arrival, Passage, Departure) and the
//     total order they pop in
//   - schedule.go: the pending-event schedule, a pairing heap keyed by time
//     with first-in first-out tie-breaking
//   - simulator.go: event dispatch, the clock-advance rule, and the queue
//     transitions
//
// Supporting files:
//
//   - rng.go: the deterministic sequence sources (a 128-bit-safe linear
//     congruential generator and a cyclic replay source for fixtures)
//   - config.go: the validated network description the engine is built from
//   - queue.go: per-queue state, admission, and inverse-CDF routing
//   - results.go: the accumulator snapshot handed to drivers
//
// # Determinism
//
// A run is a pure function of its configuration. All randomness flows
// through a single counted Source, so two engines built from the same
// Config produce bit-identical results, and the draw counter doubles as
// the driver's termination budget. The engine never terminates on its own:
// every arrival schedules its successor, and the caller decides when to
// stop stepping.
//
// # Time
//
// The virtual clock only moves when an event is consumed. Before any state
// changes, the interval since the previous event is attributed to every
// queue's current occupancy level; this is what makes the occupancy
// histograms time-weighted. Event timestamps popping in decreasing order
// means the schedule was corrupted, and the engine panics rather than
// record skewed statistics.
package sim
