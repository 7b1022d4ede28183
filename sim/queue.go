package sim

// Branch is one outbound routing entry: a destination queue and the
// probability mass assigned to it. Branches keep their declaration order;
// that order is part of the routing contract, not a presentation detail.
type Branch struct {
	Dest *Queue
	Prob float64
}

// Queue is one node of the network: its shape (servers, capacity, service
// delay range, outbound branches) and its running state (occupancy, loss
// count, time-weighted occupancy histogram). Queues are built once from
// configuration; only the engine mutates them afterwards.
type Queue struct {
	ID       string
	Servers  int
	Capacity int
	Service  Range

	// Outbound is the routing table in declaration order. Empty means the
	// queue is terminal: its service completions leave the network.
	Outbound []Branch

	// Occupancy is the number of clients present, in service or waiting.
	// It never exceeds Capacity.
	Occupancy int

	// Losses counts clients that found this queue full, whether they came
	// from outside or from an upstream queue.
	Losses int64

	// TimePerOccupancy[k] is the total virtual time the queue has spent
	// with exactly k clients present. Its length is Capacity+1.
	TimePerOccupancy []float64
}

func newQueue(cfg QueueConfig) *Queue {
	return &Queue{
		ID:               cfg.ID,
		Servers:          cfg.Servers,
		Capacity:         cfg.Capacity,
		Service:          cfg.Service,
		TimePerOccupancy: make([]float64, cfg.Capacity+1),
	}
}

// Terminal reports whether service completions leave the network.
func (q *Queue) Terminal() bool {
	return len(q.Outbound) == 0
}

// IsFull reports whether the queue cannot admit another client.
func (q *Queue) IsFull() bool {
	return q.Occupancy >= q.Capacity
}

// accumulate attributes dt to the current occupancy level. The engine
// calls it while advancing the clock, before any occupancy mutation, so
// the interval lands on the level that actually held during it.
func (q *Queue) accumulate(dt float64) {
	q.TimePerOccupancy[q.Occupancy] += dt
}

// Route picks the destination for one service completion by inverse-CDF
// sampling: walk the branches in declaration order, subtracting each
// probability from draw; the first branch that brings the running value
// to zero or below wins. A draw left positive by floating-point residue
// after the last branch falls through to the last destination, so every
// draw routes somewhere. Only the engine calls Route, and only on
// non-terminal queues.
func (q *Queue) Route(draw float64) *Queue {
	for i := range q.Outbound {
		draw -= q.Outbound[i].Prob
		if draw <= 0 {
			return q.Outbound[i].Dest
		}
	}
	return q.Outbound[len(q.Outbound)-1].Dest
}
