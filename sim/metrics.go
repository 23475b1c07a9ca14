// Tracks per-process completion statistics and run-wide CPU accounting.

package sim

import "fmt"

// ProcessRecord is emitted once per process when it finishes.
type ProcessRecord struct {
	FinishTime        int64   `yaml:"finish_time"`
	PID               int     `yaml:"pid"`
	ArrivalTime       int64   `yaml:"arrival_time"`
	TurnaroundTime    int64   `yaml:"turnaround_time"`    // finish - arrival
	TotalRunTime      int64   `yaml:"total_run_time"`     // sum of CPU and I/O bursts
	TurnaroundPercent float64 `yaml:"turnaround_percent"` // 100 * turnaround / total run time
	WaitTime          int64   `yaml:"wait_time"`          // turnaround - total run time
	AccumulatedWait   int64   `yaml:"accumulated_wait"`   // ready-queue time summed at each dispatch
}

// Summary is the aggregate record produced after a run.
type Summary struct {
	SimulationEnd   int64   `yaml:"simulation_end"` // latest finish time
	AverageWaitTime float64 `yaml:"average_wait_time"`
	CPUIdleTime     int64   `yaml:"cpu_idle_time"`
	CPUBusyTime     int64   `yaml:"cpu_busy_time"` // sum of dispatched slices
	CPUUtilization  float64 `yaml:"cpu_utilization"`
	Processes       int     `yaml:"processes"`
	Dispatches      int     `yaml:"dispatches"`
	Preemptions     int     `yaml:"preemptions"`
}

// Metrics aggregates statistics about one policy run
// for final reporting.
type Metrics struct {
	Records     []ProcessRecord // in finish order
	CPUIdleTime int64           // gaps with no process on the CPU
	CPUBusyTime int64           // sum of dispatched slices
	Dispatches  int
	Preemptions int // timeouts that sent a process back to the ready queue
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Records: make([]ProcessRecord, 0),
	}
}

// RecordDispatch counts one dispatch of the given slice length.
func (m *Metrics) RecordDispatch(slice int64) {
	m.Dispatches++
	m.CPUBusyTime += slice
}

// RecordIdle adds an idle gap observed at dispatch time.
func (m *Metrics) RecordIdle(gap int64) {
	if gap < 0 {
		panic(fmt.Sprintf("RecordIdle: negative idle gap %d", gap))
	}
	m.CPUIdleTime += gap
}

// RecordPreemption counts a timeout that requeued a process.
func (m *Metrics) RecordPreemption() {
	m.Preemptions++
}

// RecordFinish builds and stores the completion record of a finished process.
func (m *Metrics) RecordFinish(p *Process) ProcessRecord {
	finish, ok := p.FinishTime()
	if !ok {
		panic(fmt.Sprintf("RecordFinish: process %d has no finish time", p.ID))
	}
	turnaround := finish - p.ArrivalTime
	runTime := p.TotalRunTime()
	rec := ProcessRecord{
		FinishTime:      finish,
		PID:             p.ID,
		ArrivalTime:     p.ArrivalTime,
		TurnaroundTime:  turnaround,
		TotalRunTime:    runTime,
		WaitTime:        turnaround - runTime,
		AccumulatedWait: p.WaitTime,
	}
	if runTime > 0 {
		rec.TurnaroundPercent = 100 * float64(turnaround) / float64(runTime)
	}
	m.Records = append(m.Records, rec)
	return rec
}

// Summarize computes the aggregate record from the collected per-process records.
func (m *Metrics) Summarize() Summary {
	s := Summary{
		CPUIdleTime: m.CPUIdleTime,
		CPUBusyTime: m.CPUBusyTime,
		Processes:   len(m.Records),
		Dispatches:  m.Dispatches,
		Preemptions: m.Preemptions,
	}
	var totalWait int64
	for _, r := range m.Records {
		s.SimulationEnd = max(s.SimulationEnd, r.FinishTime)
		totalWait += r.WaitTime
	}
	if len(m.Records) > 0 {
		s.AverageWaitTime = float64(totalWait) / float64(len(m.Records))
	}
	if s.SimulationEnd > 0 {
		s.CPUUtilization = 100 * float64(s.SimulationEnd-s.CPUIdleTime) / float64(s.SimulationEnd)
	}
	return s
}
