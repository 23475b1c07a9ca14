// Package testutil provides shared test infrastructure for the scheduling simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and cmd/ test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// GoldenDataset represents the structure of testdata/golden.yaml.
type GoldenDataset struct {
	Runs []GoldenRun `yaml:"runs"`
}

// GoldenRun is the expected outcome of one policy over testdata/processes.txt.
type GoldenRun struct {
	Policy    string          `yaml:"policy"`
	Quantum   int64           `yaml:"quantum"` // 0 for fcfs
	Processes []GoldenProcess `yaml:"processes"`
	Summary   GoldenSummary   `yaml:"summary"`
}

// GoldenProcess is an expected per-process record, in finish order.
type GoldenProcess struct {
	PID               int     `yaml:"pid"`
	FinishTime        int64   `yaml:"finish_time"`
	TurnaroundTime    int64   `yaml:"turnaround_time"`
	TurnaroundPercent float64 `yaml:"turnaround_percent"`
	WaitTime          int64   `yaml:"wait_time"`
}

// GoldenSummary represents the expected aggregate metrics of a run.
type GoldenSummary struct {
	// Exact match metrics (integers)
	SimulationEnd int64 `yaml:"simulation_end"`
	CPUIdleTime   int64 `yaml:"cpu_idle_time"`
	CPUBusyTime   int64 `yaml:"cpu_busy_time"`
	Dispatches    int   `yaml:"dispatches"`
	Preemptions   int   `yaml:"preemptions"`

	// Derived floating-point metrics
	AverageWaitTime float64 `yaml:"average_wait_time"`
	CPUUtilization  float64 `yaml:"cpu_utilization"`
}

// TestdataPath resolves a file under the repo root testdata/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "golden.yaml"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
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
