package sim

import (
	"fmt"
	"math"
)

// probTolerance bounds how far a queue's outbound probabilities may sum
// from 1 before the network is rejected.
const probTolerance = 1e-9

// Source kinds accepted by RNGConfig.
const (
	RNGLCG    = "lcg"
	RNGReplay = "replay"
)

// Range is a closed interval of non-negative delays. A draw u in [0, 1)
// maps to Low + u*(High-Low), so Low is inclusive and High is the open
// supremum unless the range is degenerate.
type Range struct {
	Low  float64
	High float64
}

// Sample maps a source draw into the range. The inner conversion pins the
// multiply to a rounded float64 before the add, blocking fused
// multiply-add contraction, so sampled delays are bit-identical across
// architectures.
func (r Range) Sample(u float64) float64 {
	return r.Low + float64(u*(r.High-r.Low))
}

func (r Range) validate(name string) error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) || math.IsInf(r.Low, 0) || math.IsInf(r.High, 0) {
		return fmt.Errorf("%s: bounds must be finite, got (%v, %v)", name, r.Low, r.High)
	}
	if r.Low < 0 || r.High < 0 {
		return fmt.Errorf("%s: bounds must be non-negative, got (%v, %v)", name, r.Low, r.High)
	}
	if r.Low > r.High {
		return fmt.Errorf("%s: low bound %v exceeds high bound %v", name, r.Low, r.High)
	}
	return nil
}

// RNGConfig selects and parameterizes the deterministic sequence source.
type RNGConfig struct {
	Kind string

	// LCG parameters, used when Kind is RNGLCG.
	A    uint64
	C    uint64
	M    uint64
	Seed uint64

	// Values is the replay list, used when Kind is RNGReplay. Each value
	// must lie in [0, 1).
	Values []float64
}

// Validate rejects parameter sets no Source can be built from.
func (c RNGConfig) Validate() error {
	switch c.Kind {
	case RNGLCG:
		if c.M == 0 {
			return fmt.Errorf("rng: lcg modulus must be positive")
		}
	case RNGReplay:
		if len(c.Values) == 0 {
			return fmt.Errorf("rng: replay needs at least one value")
		}
		for i, v := range c.Values {
			if math.IsNaN(v) || v < 0 || v >= 1 {
				return fmt.Errorf("rng: replay value %d is %v, want [0,1)", i, v)
			}
		}
	default:
		return fmt.Errorf("rng: unknown kind %q (want %q or %q)", c.Kind, RNGLCG, RNGReplay)
	}
	return nil
}

// OutboundConfig is one routing declaration: a destination queue ID and
// its probability mass. Declaration order is preserved all the way into
// Queue.Outbound.
type OutboundConfig struct {
	To   string
	Prob float64
}

// QueueConfig declares one queue node.
type QueueConfig struct {
	ID       string
	Servers  int
	Capacity int
	Service  Range
	Outbound []OutboundConfig
}

// Config is the complete, validated description the engine is built from.
// Drivers parse their file formats into this shape and call Validate (or
// just New, which validates first) before running anything.
type Config struct {
	RNG RNGConfig

	// StartTime is the initial clock value. Zero is the common case;
	// anything finite works, results only ever report spans.
	StartTime float64

	// EntryQueue names the queue external arrivals target.
	EntryQueue string

	// Arrival is the delay range between consecutive external arrivals.
	Arrival Range

	// Queues lists the network's nodes. Order is meaningful: results are
	// reported in declaration order.
	Queues []QueueConfig
}

// Validate checks every construction-time failure mode and reports the
// first one found. A Config that passes builds an engine that needs no
// further validation while running.
func (c Config) Validate() error {
	if err := c.RNG.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.StartTime) || math.IsInf(c.StartTime, 0) {
		return fmt.Errorf("start time must be finite, got %v", c.StartTime)
	}
	if err := c.Arrival.validate("arrival range"); err != nil {
		return err
	}
	if len(c.Queues) == 0 {
		return fmt.Errorf("network needs at least one queue")
	}
	ids := make(map[string]bool, len(c.Queues))
	for i, q := range c.Queues {
		if q.ID == "" {
			return fmt.Errorf("queue %d: id must not be empty", i)
		}
		if ids[q.ID] {
			return fmt.Errorf("queue %q: duplicate id", q.ID)
		}
		ids[q.ID] = true
		if q.Servers < 1 {
			return fmt.Errorf("queue %q: servers must be at least 1, got %d", q.ID, q.Servers)
		}
		if q.Capacity < q.Servers {
			return fmt.Errorf("queue %q: capacity %d below server count %d", q.ID, q.Capacity, q.Servers)
		}
		if err := q.Service.validate(fmt.Sprintf("queue %q: service range", q.ID)); err != nil {
			return err
		}
	}
	for _, q := range c.Queues {
		if len(q.Outbound) == 0 {
			continue
		}
		var sum float64
		for j, b := range q.Outbound {
			if !ids[b.To] {
				return fmt.Errorf("queue %q: outbound %d routes to unknown queue %q", q.ID, j, b.To)
			}
			if math.IsNaN(b.Prob) || b.Prob <= 0 || b.Prob > 1 {
				return fmt.Errorf("queue %q: outbound %d probability %v outside (0,1]", q.ID, j, b.Prob)
			}
			sum += b.Prob
		}
		if math.Abs(sum-1) > probTolerance {
			return fmt.Errorf("queue %q: outbound probabilities sum to %v, want 1", q.ID, sum)
		}
	}
	if c.EntryQueue == "" {
		return fmt.Errorf("entry queue must be named")
	}
	if !ids[c.EntryQueue] {
		return fmt.Errorf("entry queue %q is not a declared queue", c.EntryQueue)
	}
	return nil
}
