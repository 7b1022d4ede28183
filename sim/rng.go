package sim

import (
	"fmt"
	"math/bits"

	"github.com/gammazero/deque"
)

// Source yields the deterministic sequence of values in [0, 1) that drives
// every random decision in the engine. Implementations must be pure state
// machines: same construction, same sequence.
type Source interface {
	Next() float64
}

// LCG is a linear congruential generator over the recurrence
// x <- (a*x + c) mod m, emitting x/m. The multiply-add runs in 128 bits,
// so any uint64 parameter set reproduces the mathematical sequence
// exactly; there is no silent overflow wrap for large a, c, or m.
//
// The quotient is exact for the usual power-of-two moduli up to 2^53.
// Beyond that the conversion to float64 rounds, which keeps outputs
// deterministic but no longer distinct per state.
type LCG struct {
	a, c, m uint64
	x       uint64
}

// NewLCG returns a generator seeded at x = seed. The modulus must be
// positive; seeds at or above the modulus are folded by the first step,
// since the recurrence is congruential.
func NewLCG(a, c, m, seed uint64) *LCG {
	if m == 0 {
		panic("sim: LCG modulus must be positive")
	}
	return &LCG{a: a, c: c, m: m, x: seed}
}

// Next advances the state and returns the new state scaled into [0, 1).
func (g *LCG) Next() float64 {
	hi, lo := bits.Mul64(g.a, g.x)
	lo, carry := bits.Add64(lo, g.c, 0)
	// Rem64, unlike Div64, tolerates hi >= m, which happens whenever the
	// 128-bit product dwarfs the modulus.
	g.x = bits.Rem64(hi+carry, lo, g.m)
	return float64(g.x) / float64(g.m)
}

// Replay replays a fixed list of values cyclically: after the last value
// the sequence starts over from the first. Tests and scripted scenarios
// use it to pin every draw of a run.
type Replay struct {
	ring deque.Deque[float64]
}

// NewReplay copies values into the replay ring. The list must not be
// empty; values are not validated here, the config path does that.
func NewReplay(values []float64) *Replay {
	if len(values) == 0 {
		panic("sim: replay source needs at least one value")
	}
	r := &Replay{}
	r.ring = *deque.New[float64](len(values))
	for _, v := range values {
		r.ring.PushBack(v)
	}
	return r
}

// Next pops the front of the ring, pushes it back on the tail, and
// returns it. After len(values) calls the ring is back in its original
// order.
func (r *Replay) Next() float64 {
	v := r.ring.PopFront()
	r.ring.PushBack(v)
	return v
}

// NewSource builds the Source selected by cfg. The same checks run during
// Config.Validate; they repeat here so a Source built directly from an
// RNGConfig fails just as loudly.
func NewSource(cfg RNGConfig) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case RNGLCG:
		return NewLCG(cfg.A, cfg.C, cfg.M, cfg.Seed), nil
	case RNGReplay:
		return NewReplay(cfg.Values), nil
	}
	return nil, fmt.Errorf("rng: unknown kind %q", cfg.Kind)
}
