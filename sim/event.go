package sim

import "fmt"

// EventKind identifies what happens when an event fires.
type EventKind string

const (
	// EventArrival moves a process into the ready queue. It covers both the
	// initial arrival and the return from an I/O burst.
	EventArrival EventKind = "Arrival"
	// EventCPUBurstComplete fires when a dispatched slice exhausts the current CPU burst.
	EventCPUBurstComplete EventKind = "CPUBurstComplete"
	// EventCPUTimeout fires when the quantum expires before the burst finishes.
	EventCPUTimeout EventKind = "CPUTimeout"
)

// eventKindPrecedence orders events that share a timestamp (lower fires first).
// Arrivals are queued before the CPU is released, so a process freed by a
// completion or timeout at the same instant lines up behind them.
var eventKindPrecedence = map[EventKind]int{
	EventArrival:          0,
	EventCPUBurstComplete: 1,
	EventCPUTimeout:       2,
}

// Event is a scheduled state transition for one process. Events are values
// and are never modified after creation.
type Event struct {
	Time int64     // simulation time the event fires (in ticks)
	Kind EventKind // what happens
	PID  int       // external process id
}

func (e Event) String() string {
	return fmt.Sprintf("%s(pid=%d @%d)", e.Kind, e.PID, e.Time)
}

// EventLess is the total order over events.
// Order by: timestamp -> kind precedence -> process id.
func EventLess(a, b Event) bool {
	// Primary: timestamp (lower first)
	if a.Time != b.Time {
		return a.Time < b.Time
	}

	// Secondary: kind precedence
	pa, pb := kindPrecedence(a.Kind), kindPrecedence(b.Kind)
	if pa != pb {
		return pa < pb
	}

	// Tertiary: process id (lower first, deterministic tie-breaker)
	return a.PID < b.PID
}

func kindPrecedence(k EventKind) int {
	p, ok := eventKindPrecedence[k]
	if !ok {
		panic(fmt.Sprintf("unknown event kind %q", k))
	}
	return p
}
