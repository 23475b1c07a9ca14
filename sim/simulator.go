// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim/trace"
)

// Simulator is the core object that holds simulation time, the process table,
// the queues, and the event loop for one policy run. It owns all of its state;
// nothing is shared between runs.
type Simulator struct {
	Clock  int64
	RunID  string
	Policy PolicyConfig
	// EventQueue has all pending simulator events (arrivals, completions, timeouts)
	EventQueue *EventQueue
	// ReadyQ aka processes waiting for the CPU, in FIFO order
	ReadyQ *ReadyQueue
	// Processes is the process table, keyed by external process id
	Processes map[int]*Process
	// Running is the process currently holding the CPU; nil when the CPU is idle
	Running *Process
	// BusyUntil is the end of the last dispatched slice. The gap between it and
	// the next dispatch is idle time.
	BusyUntil int64
	Metrics   *Metrics
	Trace     *trace.SimulationTrace

	order    []int // process ids in input order
	finished int
}

// RunResult is everything one policy run produces.
type RunResult struct {
	RunID   string
	Policy  PolicyConfig
	Records []ProcessRecord // in finish order
	Summary Summary
	Trace   *trace.SimulationTrace // nil when tracing is disabled
}

// NewSimulator validates the policy and process table and builds a fresh
// simulation seeded with one arrival per process. Invalid input is rejected
// here, never discovered mid-run.
func NewSimulator(specs []ProcessSpec, policy PolicyConfig, traceLevel trace.Level) (*Simulator, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	if err := ValidateSpecs(specs); err != nil {
		return nil, fmt.Errorf("invalid process table: %w", err)
	}
	if !trace.IsValidLevel(string(traceLevel)) {
		return nil, fmt.Errorf("unknown trace level %q", traceLevel)
	}

	runID := xid.New().String()
	s := &Simulator{
		Clock:      0,
		RunID:      runID,
		Policy:     policy,
		EventQueue: NewEventQueue(),
		ReadyQ:     &ReadyQueue{},
		Processes:  make(map[int]*Process, len(specs)),
		Running:    nil,
		BusyUntil:  0,
		Metrics:    NewMetrics(),
		order:      make([]int, 0, len(specs)),
	}
	if traceLevel == trace.LevelEvents {
		s.Trace = trace.NewSimulationTrace(traceLevel, runID)
	}

	for _, ps := range specs {
		s.Processes[ps.ID] = newProcess(ps)
		s.order = append(s.order, ps.ID)
		s.Schedule(Event{Time: ps.ArrivalTime, Kind: EventArrival, PID: ps.ID})
	}
	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Time < sim.Clock {
		panic(fmt.Sprintf("Schedule: %s is in the past (clock=%d)", ev, sim.Clock))
	}
	sim.EventQueue.Push(ev)
}

// Run processes events until none remain and returns the run's metrics.
// Every process is finished when the event queue drains.
func (sim *Simulator) Run() *RunResult {
	logrus.Infof("Starting %s run %s with %d processes", sim.Policy, sim.RunID, len(sim.order))
	for {
		// get the next event to be simulated
		ev, ok := sim.EventQueue.Pop()
		if !ok {
			break
		}
		// advance the clock
		sim.Clock = ev.Time
		logrus.Debugf("[tick %07d] Executing %s", sim.Clock, ev)
		// process the event
		sim.handle(ev)
	}

	if sim.finished != len(sim.order) {
		panic(fmt.Sprintf("Run: event queue drained with %d of %d processes finished", sim.finished, len(sim.order)))
	}
	sim.Trace.Record(trace.Record{Clock: sim.Clock, Kind: trace.KindCPUIdle})

	summary := sim.Metrics.Summarize()
	if sim.Trace.Enabled() {
		ts := trace.Summarize(sim.Trace)
		if ts.Dispatches != summary.Dispatches || ts.Exits != summary.Processes {
			panic(fmt.Sprintf("Run: trace has %d dispatches and %d exits, metrics have %d and %d",
				ts.Dispatches, ts.Exits, summary.Dispatches, summary.Processes))
		}
		logrus.Debugf("Trace %s: %d records, %d requeues, %d I/O blocks, max slice %d",
			sim.RunID, ts.TotalRecords, ts.Requeues, ts.IOBlocks, ts.MaxSlice)
	}
	logrus.Infof("[tick %07d] %s run ended: avg wait %.2f, idle %d, utilization %.2f%%",
		sim.Clock, sim.Policy, summary.AverageWaitTime, summary.CPUIdleTime, summary.CPUUtilization)

	return &RunResult{
		RunID:   sim.RunID,
		Policy:  sim.Policy,
		Records: sim.Metrics.Records,
		Summary: summary,
		Trace:   sim.Trace,
	}
}

// RunPolicies runs every policy on its own fresh copy of the process table,
// in order. Configuration errors are reported before any run starts.
func RunPolicies(specs []ProcessSpec, policies []PolicyConfig, traceLevel trace.Level) ([]*RunResult, error) {
	sims := make([]*Simulator, 0, len(policies))
	for _, pc := range policies {
		s, err := NewSimulator(specs, pc, traceLevel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pc, err)
		}
		sims = append(sims, s)
	}
	results := make([]*RunResult, 0, len(sims))
	for _, s := range sims {
		results = append(results, s.Run())
	}
	return results, nil
}

func (sim *Simulator) process(pid int) *Process {
	p, ok := sim.Processes[pid]
	if !ok {
		panic(fmt.Sprintf("unknown process id %d", pid))
	}
	return p
}

func (sim *Simulator) handle(ev Event) {
	p := sim.process(ev.PID)
	if p.State == StateFinished {
		panic(fmt.Sprintf("%s for finished process %d", ev.Kind, p.ID))
	}
	switch ev.Kind {
	case EventArrival:
		sim.handleArrival(p, ev.Time)
	case EventCPUBurstComplete:
		sim.handleBurstComplete(p, ev.Time)
	case EventCPUTimeout:
		sim.handleTimeout(p, ev.Time)
	default:
		panic(fmt.Sprintf("unknown event kind %q", ev.Kind))
	}
}

// handleArrival puts a newly arrived or I/O-returning process on the ready queue.
func (sim *Simulator) handleArrival(p *Process, now int64) {
	if p.State != StateNotArrived && p.State != StateBlocked {
		panic(fmt.Sprintf("arrival of process %d in state %s", p.ID, p.State))
	}
	sim.ReadyQ.Enqueue(p, now)
	logrus.Debugf("<< Arrival: process %d at %d ticks, ready queue %s", p.ID, now, sim.ReadyQ)
	sim.Trace.Record(trace.Record{Clock: now, PID: p.ID, Kind: trace.KindArrive})

	if sim.Running == nil {
		sim.scheduleNext(now)
	}
}

// handleBurstComplete runs when a slice exhausts the current CPU burst.
func (sim *Simulator) handleBurstComplete(p *Process, now int64) {
	sim.releaseCPU(p, now)
	if p.RemainingCPU != 0 {
		panic(fmt.Sprintf("process %d: burst complete with %d ticks left", p.ID, p.RemainingCPU))
	}
	sim.completeBurst(p, now)
	sim.scheduleNext(now)
}

// handleTimeout runs when the quantum expires. A burst that ran out exactly
// at the quantum boundary is a normal completion, not a requeue.
func (sim *Simulator) handleTimeout(p *Process, now int64) {
	sim.releaseCPU(p, now)
	if p.RemainingCPU > 0 {
		sim.Metrics.RecordPreemption()
		sim.ReadyQ.Enqueue(p, now)
		logrus.Debugf("<< Timeout: process %d requeued with %d ticks left", p.ID, p.RemainingCPU)
		sim.Trace.Record(trace.Record{Clock: now, PID: p.ID, Kind: trace.KindRequeue})
	} else {
		sim.completeBurst(p, now)
	}
	sim.scheduleNext(now)
}

// releaseCPU charges the time p actually ran against its burst and frees the CPU.
func (sim *Simulator) releaseCPU(p *Process, now int64) {
	if sim.Running != p {
		panic(fmt.Sprintf("process %d released the CPU but is not running", p.ID))
	}
	used := max(now-p.StartRunTime, 0)
	p.RemainingCPU = max(p.RemainingCPU-used, 0)
	if now < sim.BusyUntil {
		sim.BusyUntil = now
	}
	sim.Running = nil
}

// completeBurst either finishes p or sends it to I/O and schedules its return.
func (sim *Simulator) completeBurst(p *Process, now int64) {
	if p.OnLastBurst() {
		p.markFinished(now)
		sim.finished++
		rec := sim.Metrics.RecordFinish(p)
		logrus.Infof("Finished process %d at %d: turnaround %d, wait %d", p.ID, now, rec.TurnaroundTime, rec.WaitTime)
		sim.Trace.Record(trace.Record{Clock: now, PID: p.ID, Kind: trace.KindExit})
		return
	}
	wakeup := now + p.advanceBurst()
	p.State = StateBlocked
	sim.Schedule(Event{Time: wakeup, Kind: EventArrival, PID: p.ID})
	logrus.Debugf("<< I/O: process %d returns at %d", p.ID, wakeup)
	sim.Trace.Record(trace.Record{Clock: now, PID: p.ID, Kind: trace.KindIOBlock, Wakeup: wakeup})
}

// scheduleNext dispatches the head of the ready queue if the CPU is free.
// Idle time is charged lazily, as the gap between the end of the last slice
// and this dispatch.
func (sim *Simulator) scheduleNext(now int64) {
	if sim.Running != nil {
		return
	}
	pid, ok := sim.ReadyQ.Dequeue()
	if !ok {
		return
	}
	p := sim.process(pid)

	p.WaitTime += now - p.LastReadyTime
	p.StartRunTime = now
	if now > sim.BusyUntil {
		sim.Metrics.RecordIdle(now - sim.BusyUntil)
	}

	slice := min(p.RemainingCPU, sim.Policy.Quantum)
	sim.BusyUntil = now + slice
	sim.Running = p
	p.State = StateRunning
	sim.Metrics.RecordDispatch(slice)

	kind := EventCPUTimeout
	if slice == p.RemainingCPU {
		kind = EventCPUBurstComplete
	}
	sim.Schedule(Event{Time: now + slice, Kind: kind, PID: p.ID})
	logrus.Debugf("Dispatch: process %d for %d ticks (%s at %d)", p.ID, slice, kind, now+slice)
	sim.Trace.Record(trace.Record{Clock: now, PID: p.ID, Kind: trace.KindDispatch, Slice: slice})
}
