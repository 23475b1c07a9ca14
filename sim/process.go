// Defines the process descriptor consumed by the simulator and the runtime
// process control block (PCB) that tracks a process's progress through its bursts.

package sim

import (
	"errors"
	"fmt"
)

// BurstPair is one CPU burst followed by an optional I/O burst.
// A nil IO marks the final pair: the process exits after this CPU burst.
type BurstPair struct {
	CPU int64  // CPU burst duration (in ticks)
	IO  *int64 // I/O burst duration (in ticks); nil on the last pair
}

// IOBurst returns a pointer to d, for building BurstPair literals.
func IOBurst(d int64) *int64 { return &d }

// ProcessSpec is the already-parsed, immutable description of a process.
type ProcessSpec struct {
	ID          int         // external process id; tie-breaker for simultaneous events
	ArrivalTime int64       // time the process first becomes ready (in ticks)
	Bursts      []BurstPair // alternating CPU/I/O activity
}

// TotalRunTime is the sum of all CPU and I/O burst durations.
func (ps ProcessSpec) TotalRunTime() int64 {
	var total int64
	for _, b := range ps.Bursts {
		total += b.CPU
		if b.IO != nil {
			total += *b.IO
		}
	}
	return total
}

// Errors returned by ValidateSpecs. Callers match them with errors.Is.
var (
	ErrNoProcesses        = errors.New("no processes")
	ErrDuplicateProcessID = errors.New("duplicate process id")
	ErrNegativeArrival    = errors.New("negative arrival time")
	ErrNoBursts           = errors.New("process has no bursts")
	ErrInvalidBurst       = errors.New("invalid burst duration")
	ErrMissingIO          = errors.New("non-final burst has no I/O duration")
	ErrTrailingIO         = errors.New("final burst must not have an I/O duration")
)

// ValidateSpecs checks a process table before it is handed to the simulator.
// A table that fails validation is never simulated.
func ValidateSpecs(specs []ProcessSpec) error {
	if len(specs) == 0 {
		return ErrNoProcesses
	}
	seen := make(map[int]bool, len(specs))
	for _, ps := range specs {
		if seen[ps.ID] {
			return fmt.Errorf("process %d: %w", ps.ID, ErrDuplicateProcessID)
		}
		seen[ps.ID] = true
		if ps.ArrivalTime < 0 {
			return fmt.Errorf("process %d: %w (%d)", ps.ID, ErrNegativeArrival, ps.ArrivalTime)
		}
		if len(ps.Bursts) == 0 {
			return fmt.Errorf("process %d: %w", ps.ID, ErrNoBursts)
		}
		last := len(ps.Bursts) - 1
		for i, b := range ps.Bursts {
			if b.CPU <= 0 {
				return fmt.Errorf("process %d burst %d: %w: cpu=%d", ps.ID, i, ErrInvalidBurst, b.CPU)
			}
			switch {
			case i < last && b.IO == nil:
				return fmt.Errorf("process %d burst %d: %w", ps.ID, i, ErrMissingIO)
			case i == last && b.IO != nil:
				return fmt.Errorf("process %d burst %d: %w", ps.ID, i, ErrTrailingIO)
			case b.IO != nil && *b.IO < 0:
				return fmt.Errorf("process %d burst %d: %w: io=%d", ps.ID, i, ErrInvalidBurst, *b.IO)
			}
		}
	}
	return nil
}

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNotArrived ProcessState = "not-arrived"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateBlocked    ProcessState = "blocked"
	StateFinished   ProcessState = "finished"
)

// Process is the runtime PCB of one process for a single policy run.
// It is built fresh from a ProcessSpec for every run, so no progress
// leaks from one run into the next.
type Process struct {
	ID          int
	ArrivalTime int64
	Bursts      []BurstPair

	State         ProcessState
	CurrentBurst  int   // index into Bursts; never decreases
	RemainingCPU  int64 // CPU time left in the current burst; never negative
	WaitTime      int64 // time spent in the ready queue, accumulated per dispatch
	LastReadyTime int64 // last time the process joined the ready queue
	StartRunTime  int64 // last time the process was dispatched

	finishTime int64
	finished   bool
}

func newProcess(ps ProcessSpec) *Process {
	bursts := make([]BurstPair, len(ps.Bursts))
	for i, b := range ps.Bursts {
		bursts[i] = BurstPair{CPU: b.CPU}
		if b.IO != nil {
			bursts[i].IO = IOBurst(*b.IO)
		}
	}
	return &Process{
		ID:           ps.ID,
		ArrivalTime:  ps.ArrivalTime,
		Bursts:       bursts,
		State:        StateNotArrived,
		RemainingCPU: bursts[0].CPU,
	}
}

// TotalRunTime is the sum of all CPU and I/O burst durations.
func (p *Process) TotalRunTime() int64 {
	return ProcessSpec{Bursts: p.Bursts}.TotalRunTime()
}

// OnLastBurst reports whether the current CPU burst is the final one.
func (p *Process) OnLastBurst() bool {
	return p.CurrentBurst == len(p.Bursts)-1
}

// FinishTime returns the completion time and whether it has been set.
func (p *Process) FinishTime() (int64, bool) {
	return p.finishTime, p.finished
}

func (p *Process) markFinished(now int64) {
	if p.finished {
		panic(fmt.Sprintf("process %d: finish time already set to %d, refusing %d", p.ID, p.finishTime, now))
	}
	p.finishTime = now
	p.finished = true
	p.State = StateFinished
}

// advanceBurst moves to the next CPU burst and returns the I/O duration that
// separates the two.
func (p *Process) advanceBurst() int64 {
	io := p.Bursts[p.CurrentBurst].IO
	if io == nil || p.OnLastBurst() {
		panic(fmt.Sprintf("process %d: no burst after %d", p.ID, p.CurrentBurst))
	}
	p.CurrentBurst++
	p.RemainingCPU = p.Bursts[p.CurrentBurst].CPU
	return *io
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Burst: %d/%d, RemainingCPU: %d)",
		p.ID, p.State, p.CurrentBurst, len(p.Bursts), p.RemainingCPU)
}
