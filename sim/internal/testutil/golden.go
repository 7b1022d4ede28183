// Package testutil provides shared test infrastructure for the simulator:
// the pinned golden-run loader and the float assertion helper used by the
// sim test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// RangeJSON is a (low, high) delay range as stored in the golden file.
// It mirrors sim.Range without importing it; sim's in-package tests load
// golden runs, so importing sim from here would be a cycle.
type RangeJSON struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// GoldenRun pins one end-to-end single-queue run: the generator
// parameters and the network shape on the way in, the exact accumulator
// state on the way out. Regenerating it means every downstream consumer
// of run output changes too, so treat edits as breaking.
type GoldenRun struct {
	RNG struct {
		A    uint64 `json:"a"`
		C    uint64 `json:"c"`
		M    uint64 `json:"m"`
		Seed uint64 `json:"seed"`
	} `json:"rng"`
	ArrivalRange RangeJSON `json:"arrival_range"`
	ServiceRange RangeJSON `json:"service_range"`
	Servers      int       `json:"servers"`
	Capacity     int       `json:"capacity"`
	DrawBudget   int64     `json:"draw_budget"`
	Expected     struct {
		FinalClock       float64   `json:"final_clock"`
		Draws            int64     `json:"draws"`
		Steps            int64     `json:"steps"`
		Losses           int64     `json:"losses"`
		FinalOccupancy   int       `json:"final_occupancy"`
		TimePerOccupancy []float64 `json:"time_per_occupancy"`
	} `json:"expected"`
}

// LoadGoldenRun loads testdata/golden_single_queue.json. The path is
// resolved relative to this source file, so tests in any package find it.
func LoadGoldenRun(t *testing.T) *GoldenRun {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_single_queue.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden run: %v", err)
	}

	var run GoldenRun
	if err := json.Unmarshal(data, &run); err != nil {
		t.Fatalf("Failed to parse golden run: %v", err)
	}

	return &run
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
