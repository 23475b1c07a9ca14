// Package trace provides decision-trace recording for scheduling runs.
// This package has no dependencies on sim/ and stores pure data types.
package trace

import "fmt"

// Kind names a traced scheduling decision.
type Kind string

const (
	KindArrive   Kind = "arrive"   // joined the ready queue on arrival or I/O return
	KindRequeue  Kind = "requeue"  // joined the ready queue after a timeout
	KindDispatch Kind = "dispatch" // given the CPU for Slice ticks
	KindIOBlock  Kind = "io-block" // left the CPU for I/O, returns at Wakeup
	KindExit     Kind = "exit"     // finished its last burst
	KindCPUIdle  Kind = "cpu-idle" // end of the run, nothing left to schedule
)

// Record captures a single scheduling decision.
type Record struct {
	RunID  string
	Clock  int64
	PID    int
	Kind   Kind
	Slice  int64 // dispatch only
	Wakeup int64 // io-block only
}

// String renders the record in the simulator's verbose console style.
func (r Record) String() string {
	switch r.Kind {
	case KindArrive:
		return fmt.Sprintf("%d : Process %d joins ready queue upon arrival", r.Clock, r.PID)
	case KindRequeue:
		return fmt.Sprintf("%d : Process %d joins ready queue after timeout", r.Clock, r.PID)
	case KindDispatch:
		return fmt.Sprintf("%d : Process %d is scheduled to run for time %d", r.Clock, r.PID, r.Slice)
	case KindIOBlock:
		return fmt.Sprintf("%d : Process %d will return after IO at %d", r.Clock, r.PID, r.Wakeup)
	case KindExit:
		return fmt.Sprintf("%d : Process %d exits", r.Clock, r.PID)
	case KindCPUIdle:
		return fmt.Sprintf("%d : CPU goes idle", r.Clock)
	}
	return fmt.Sprintf("%d : %s pid=%d", r.Clock, r.Kind, r.PID)
}
