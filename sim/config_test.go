package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		RNG:        RNGConfig{Kind: RNGLCG, A: goldenA, C: goldenC, M: goldenM, Seed: goldenSeed},
		EntryQueue: "front",
		Arrival:    Range{Low: 5, High: 6},
		Queues: []QueueConfig{
			{
				ID: "front", Servers: 1, Capacity: 3,
				Service:  Range{Low: 1, High: 3},
				Outbound: []OutboundConfig{{To: "back", Prob: 1.0}},
			},
			{ID: "back", Servers: 2, Capacity: 4, Service: Range{Low: 2, High: 4}},
		},
	}
}

func TestConfig_ValidPasses(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfig_RejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"no queues",
			func(c *Config) { c.Queues = nil },
			"at least one queue",
		},
		{
			"empty queue id",
			func(c *Config) { c.Queues[1].ID = "" },
			"id must not be empty",
		},
		{
			"duplicate queue id",
			func(c *Config) { c.Queues[1].ID = "front" },
			"duplicate id",
		},
		{
			"zero servers",
			func(c *Config) { c.Queues[0].Servers = 0 },
			"servers must be at least 1",
		},
		{
			"negative servers",
			func(c *Config) { c.Queues[0].Servers = -2 },
			"servers must be at least 1",
		},
		{
			"capacity below servers",
			func(c *Config) { c.Queues[1].Capacity = 1 },
			"below server count",
		},
		{
			"inverted service range",
			func(c *Config) { c.Queues[0].Service = Range{Low: 3, High: 1} },
			"exceeds high bound",
		},
		{
			"negative service bound",
			func(c *Config) { c.Queues[0].Service = Range{Low: -1, High: 1} },
			"non-negative",
		},
		{
			"negative arrival bound",
			func(c *Config) { c.Arrival = Range{Low: -1, High: 2} },
			"non-negative",
		},
		{
			"inverted arrival range",
			func(c *Config) { c.Arrival = Range{Low: 6, High: 5} },
			"exceeds high bound",
		},
		{
			"unknown outbound destination",
			func(c *Config) { c.Queues[0].Outbound[0].To = "nowhere" },
			"unknown queue",
		},
		{
			"probability above one",
			func(c *Config) { c.Queues[0].Outbound[0].Prob = 1.5 },
			"outside (0,1]",
		},
		{
			"zero probability branch",
			func(c *Config) {
				c.Queues[0].Outbound = []OutboundConfig{{To: "back", Prob: 0}, {To: "front", Prob: 1.0}}
			},
			"outside (0,1]",
		},
		{
			"probabilities not normalized",
			func(c *Config) {
				c.Queues[0].Outbound = []OutboundConfig{{To: "back", Prob: 0.5}, {To: "front", Prob: 0.4}}
			},
			"sum to",
		},
		{
			"empty entry queue",
			func(c *Config) { c.EntryQueue = "" },
			"entry queue must be named",
		},
		{
			"unknown entry queue",
			func(c *Config) { c.EntryQueue = "missing" },
			"not a declared queue",
		},
		{
			"unknown rng kind",
			func(c *Config) { c.RNG.Kind = "xorshift" },
			"unknown kind",
		},
		{
			"zero modulus",
			func(c *Config) { c.RNG.M = 0 },
			"modulus",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfig_ProbabilitySumTolerance(t *testing.T) {
	// Three equal thirds sum to 0.999...; the tolerance must absorb
	// ordinary floating-point residue without admitting real mistakes.
	cfg := validConfig()
	cfg.Queues[0].Outbound = []OutboundConfig{
		{To: "front", Prob: 1.0 / 3.0},
		{To: "back", Prob: 1.0 / 3.0},
		{To: "back", Prob: 1.0 / 3.0},
	}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SelfLoopIsValid(t *testing.T) {
	cfg := validConfig()
	cfg.Queues[0].Outbound = []OutboundConfig{
		{To: "front", Prob: 0.5},
		{To: "back", Prob: 0.5},
	}
	assert.NoError(t, cfg.Validate())
}

func TestRange_Sample(t *testing.T) {
	r := Range{Low: 5, High: 6}
	assert.Equal(t, 5.0, r.Sample(0))
	assert.Equal(t, 5.5, r.Sample(0.5))

	r = Range{Low: 1, High: 3}
	assert.Equal(t, 2.0, r.Sample(0.5))

	// Degenerate range: every draw maps to the same delay.
	r = Range{Low: 4, High: 4}
	assert.Equal(t, 4.0, r.Sample(0.9))

	// Zero everywhere: instantaneous.
	r = Range{}
	assert.Equal(t, 0.0, r.Sample(0.9))
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.EntryQueue = "missing"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_WiresNetwork(t *testing.T) {
	s, err := New(validConfig())
	require.NoError(t, err)

	front := s.Queue("front")
	back := s.Queue("back")
	require.NotNil(t, front)
	require.NotNil(t, back)
	assert.Nil(t, s.Queue("nowhere"))

	// Outbound destinations resolve to the actual queue objects.
	require.Len(t, front.Outbound, 1)
	assert.Same(t, back, front.Outbound[0].Dest)
	assert.False(t, front.Terminal())
	assert.True(t, back.Terminal())

	// Histograms are sized for every occupancy level 0..Capacity.
	assert.Len(t, front.TimePerOccupancy, 4)
	assert.Len(t, back.TimePerOccupancy, 5)

	// Nothing is scheduled until Start.
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, int64(0), s.Draws())
}
