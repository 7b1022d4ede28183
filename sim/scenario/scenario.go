// Package scenario loads simulation scenario files: the YAML surface the
// CLI consumes, converted into the core engine's validated configuration.
// The file format mirrors sim.Config plus run settings that belong to the
// driver rather than the engine, such as the draw budget.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/queuenet/queuenet/sim"
)

// Scenario is the top-level scenario file.
// Loaded from YAML via Load(path).
type Scenario struct {
	Name       string      `yaml:"name,omitempty"`
	RNG        RNGSpec     `yaml:"rng"`
	StartTime  float64     `yaml:"start_time,omitempty"`
	EntryQueue string      `yaml:"entry_queue"`
	Arrival    RangeSpec   `yaml:"arrival_range"`
	Draws      int64       `yaml:"draws"`
	Queues     []QueueSpec `yaml:"queues"`
}

// RNGSpec selects the deterministic sequence source. LCG parameters and
// replay values are mutually exclusive by kind.
type RNGSpec struct {
	Kind   string    `yaml:"kind"`
	A      uint64    `yaml:"a,omitempty"`
	C      uint64    `yaml:"c,omitempty"`
	M      uint64    `yaml:"m,omitempty"`
	Seed   uint64    `yaml:"seed,omitempty"`
	Values []float64 `yaml:"values,omitempty"`
}

// RangeSpec is a closed (low, high) delay range.
type RangeSpec struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// QueueSpec declares one queue node. Outbound is a list, not a map: the
// order branches are declared in is the order the router walks them.
type QueueSpec struct {
	ID       string         `yaml:"id"`
	Servers  int            `yaml:"servers"`
	Capacity int            `yaml:"capacity"`
	Service  RangeSpec      `yaml:"service_range"`
	Outbound []OutboundSpec `yaml:"outbound,omitempty"`
}

// OutboundSpec is one routing declaration.
type OutboundSpec struct {
	To          string  `yaml:"to"`
	Probability float64 `yaml:"probability"`
}

// Load reads and parses a scenario file. Parsing is strict: unrecognized
// keys are rejected, so typos fail instead of silently falling back to
// defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return sc, nil
}

// Parse parses scenario YAML with strict field checking.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the driver-level fields, then the converted engine
// configuration. A zero draw budget is allowed (load the network, run
// nothing); a negative one is not.
func (s *Scenario) Validate() error {
	if s.Draws < 0 {
		return fmt.Errorf("draws must be non-negative, got %d", s.Draws)
	}
	return s.Config().Validate()
}

// Config converts the scenario into the engine configuration, preserving
// queue and outbound declaration order.
func (s *Scenario) Config() sim.Config {
	cfg := sim.Config{
		RNG: sim.RNGConfig{
			Kind:   s.RNG.Kind,
			A:      s.RNG.A,
			C:      s.RNG.C,
			M:      s.RNG.M,
			Seed:   s.RNG.Seed,
			Values: s.RNG.Values,
		},
		StartTime:  s.StartTime,
		EntryQueue: s.EntryQueue,
		Arrival:    sim.Range{Low: s.Arrival.Low, High: s.Arrival.High},
		Queues:     make([]sim.QueueConfig, 0, len(s.Queues)),
	}
	for _, q := range s.Queues {
		qc := sim.QueueConfig{
			ID:       q.ID,
			Servers:  q.Servers,
			Capacity: q.Capacity,
			Service:  sim.Range{Low: q.Service.Low, High: q.Service.High},
		}
		for _, o := range q.Outbound {
			qc.Outbound = append(qc.Outbound, sim.OutboundConfig{To: o.To, Prob: o.Probability})
		}
		cfg.Queues = append(cfg.Queues, qc)
	}
	return cfg
}
