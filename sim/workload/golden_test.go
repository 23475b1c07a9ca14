package workload

import (
	"fmt"
	"testing"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/internal/testutil"
	"github.com/inference-sim/cpusched/sim/trace"
)

const relTol = 1e-9

func goldenPolicy(run testutil.GoldenRun) sim.PolicyConfig {
	if run.Policy == "fcfs" {
		return sim.FCFS()
	}
	return sim.RoundRobin(run.Quantum)
}

// TestGolden_DefaultPolicies runs the fixture under each recorded policy and
// compares every completion record and aggregate against testdata/golden.yaml.
func TestGolden_DefaultPolicies(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	if len(dataset.Runs) != len(sim.DefaultPolicies()) {
		t.Fatalf("golden dataset has %d runs, want one per default policy", len(dataset.Runs))
	}

	specs, err := LoadFile(testutil.TestdataPath(t, "processes.txt"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}

	for i, run := range dataset.Runs {
		pc := goldenPolicy(run)
		if pc != sim.DefaultPolicies()[i] {
			t.Fatalf("golden run %d is %s, want %s", i, pc, sim.DefaultPolicies()[i])
		}
		t.Run(fmt.Sprint(pc), func(t *testing.T) {
			s, err := sim.NewSimulator(specs, pc, trace.LevelNone)
			if err != nil {
				t.Fatalf("NewSimulator: %v", err)
			}
			res := s.Run()

			if len(res.Records) != len(run.Processes) {
				t.Fatalf("got %d records, want %d", len(res.Records), len(run.Processes))
			}
			for j, want := range run.Processes {
				got := res.Records[j]
				if got.PID != want.PID {
					t.Errorf("finish #%d: pid %d, want %d", j, got.PID, want.PID)
					continue
				}
				if got.FinishTime != want.FinishTime {
					t.Errorf("pid %d finish: got %d, want %d", got.PID, got.FinishTime, want.FinishTime)
				}
				if got.TurnaroundTime != want.TurnaroundTime {
					t.Errorf("pid %d turnaround: got %d, want %d", got.PID, got.TurnaroundTime, want.TurnaroundTime)
				}
				if got.WaitTime != want.WaitTime {
					t.Errorf("pid %d wait: got %d, want %d", got.PID, got.WaitTime, want.WaitTime)
				}
				testutil.AssertFloat64Equal(t, fmt.Sprintf("pid %d turnaround %%", got.PID), want.TurnaroundPercent, got.TurnaroundPercent, relTol)
			}

			ws, gs := run.Summary, res.Summary
			if gs.SimulationEnd != ws.SimulationEnd {
				t.Errorf("simulation_end: got %d, want %d", gs.SimulationEnd, ws.SimulationEnd)
			}
			if gs.CPUIdleTime != ws.CPUIdleTime {
				t.Errorf("cpu_idle_time: got %d, want %d", gs.CPUIdleTime, ws.CPUIdleTime)
			}
			if gs.CPUBusyTime != ws.CPUBusyTime {
				t.Errorf("cpu_busy_time: got %d, want %d", gs.CPUBusyTime, ws.CPUBusyTime)
			}
			if gs.Dispatches != ws.Dispatches {
				t.Errorf("dispatches: got %d, want %d", gs.Dispatches, ws.Dispatches)
			}
			if gs.Preemptions != ws.Preemptions {
				t.Errorf("preemptions: got %d, want %d", gs.Preemptions, ws.Preemptions)
			}
			testutil.AssertFloat64Equal(t, "average_wait_time", ws.AverageWaitTime, gs.AverageWaitTime, relTol)
			testutil.AssertFloat64Equal(t, "cpu_utilization", ws.CPUUtilization, gs.CPUUtilization, relTol)
		})
	}
}
