// Implements the ReadyQueue, which holds the ids of processes waiting for the CPU.
// Processes are enqueued on arrival, on return from I/O, and after a timeout.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a strict FIFO of process ids. It never reorders: both FCFS and
// Round-Robin are expressed through it and differ only by quantum.
type ReadyQueue struct {
	queue []int
}

// Enqueue appends p to the back of the queue and stamps the time it became ready.
// Enqueueing a finished process is an invariant violation.
func (rq *ReadyQueue) Enqueue(p *Process, now int64) {
	if p.State == StateFinished {
		panic(fmt.Sprintf("Enqueue: process %d already finished", p.ID))
	}
	rq.queue = append(rq.queue, p.ID)
	p.LastReadyTime = now
	p.State = StateReady
}

// Dequeue removes the process id at the front of the queue.
// ok is false when the queue is empty.
func (rq *ReadyQueue) Dequeue() (pid int, ok bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	pid = rq.queue[0]
	rq.queue = rq.queue[1:]
	return pid, true
}

// IsEmpty reports whether no process is waiting.
func (rq *ReadyQueue) IsEmpty() bool { return len(rq.queue) == 0 }

// Len returns the number of waiting processes.
func (rq *ReadyQueue) Len() int { return len(rq.queue) }

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, pid := range rq.queue {
		sb.WriteString(fmt.Sprint(pid))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
