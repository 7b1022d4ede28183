// Package report renders simulation results: a text summary for people
// and a JSON document for downstream tooling. The engine hands over raw
// accumulators; every derived figure here (shares, mean occupancy) is
// display-only normalization and never flows back into the simulation.
package report

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/queuenet/queuenet/sim"
)

// jsonAPI keeps full float64 precision. Results are raw accumulators;
// truncating digits here would make reports disagree with the engine.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Text renders a human-readable run summary: the final clock, the draw
// count, and per queue the time spent at each occupancy level with its
// share of the run, the mean occupancy, and the loss count.
func Text(res sim.Results) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Final time: %g\n", res.Clock)
	fmt.Fprintf(&sb, "Draws used: %d\n", res.Draws)
	for _, q := range res.Queues {
		fmt.Fprintf(&sb, "\nQueue %s (servers=%d, capacity=%d):\n", q.ID, q.Servers, q.Capacity)
		sb.WriteString("  Time per occupancy:\n")
		for level, t := range q.TimePerOccupancy {
			fmt.Fprintf(&sb, "    %2d: %-16g %6.2f%%\n", level, t, share(t, res.Elapsed))
		}
		fmt.Fprintf(&sb, "  Mean occupancy: %.4f\n", meanOccupancy(q, res.Elapsed))
		fmt.Fprintf(&sb, "  Losses: %d\n", q.Losses)
	}
	return sb.String()
}

// JSON renders the snapshot for downstream tooling, indented, with the
// raw accumulator values untouched.
func JSON(res sim.Results) ([]byte, error) {
	return jsonAPI.MarshalIndent(res, "", "  ")
}

func share(t, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return t / elapsed * 100
}

// meanOccupancy is the time-weighted average number of clients present.
func meanOccupancy(q sim.QueueResult, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	var weighted float64
	for level, t := range q.TimePerOccupancy {
		weighted += float64(level) * t
	}
	return weighted / elapsed
}
