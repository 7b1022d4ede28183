package sim

// QueueResult is the accumulator snapshot for one queue: the raw
// time-weighted occupancy histogram and the loss count, plus the shape
// fields reports need for labeling and normalization.
type QueueResult struct {
	ID               string    `json:"id"`
	Servers          int       `json:"servers"`
	Capacity         int       `json:"capacity"`
	TimePerOccupancy []float64 `json:"time_per_occupancy"`
	Losses           int64     `json:"losses"`
}

// Results is the snapshot drivers consume after they stop stepping: the
// clock, the draw count, and per-queue statistics in declaration order.
// Values are raw accumulators; any normalization (shares, means) is the
// report layer's business. Slices are copies, so holding a snapshot while
// the engine keeps stepping is safe.
type Results struct {
	Start   float64       `json:"start_time"`
	Clock   float64       `json:"final_clock"`
	Elapsed float64       `json:"elapsed"`
	Draws   int64         `json:"draws"`
	Queues  []QueueResult `json:"queues"`
}

// Results snapshots the current accumulator state. It can be taken at any
// point between steps; each queue's histogram entries sum to Elapsed, up
// to float accumulation.
func (s *Simulator) Results() Results {
	res := Results{
		Start:   s.start,
		Clock:   s.clock,
		Elapsed: s.clock - s.start,
		Draws:   s.draws,
		Queues:  make([]QueueResult, 0, len(s.queues)),
	}
	for _, q := range s.queues {
		hist := make([]float64, len(q.TimePerOccupancy))
		copy(hist, q.TimePerOccupancy)
		res.Queues = append(res.Queues, QueueResult{
			ID:               q.ID,
			Servers:          q.Servers,
			Capacity:         q.Capacity,
			TimePerOccupancy: hist,
			Losses:           q.Losses,
		})
	}
	return res
}
