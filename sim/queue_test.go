package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestProcess(id int, cpu int64) *Process {
	return newProcess(ProcessSpec{ID: id, Bursts: []BurstPair{{CPU: cpu}}})
}

func TestReadyQueue_FIFOOrder(t *testing.T) {
	// GIVEN processes enqueued as [3, 1, 2]
	rq := &ReadyQueue{}
	for _, id := range []int{3, 1, 2} {
		rq.Enqueue(newTestProcess(id, 5), 0)
	}

	// WHEN all are dequeued
	var got []int
	for !rq.IsEmpty() {
		pid, ok := rq.Dequeue()
		assert.True(t, ok)
		got = append(got, pid)
	}

	// THEN they come out in insertion order, not id order
	assert.Equal(t, []int{3, 1, 2}, got)
}

func TestReadyQueue_Dequeue_Empty_ReportsEmpty(t *testing.T) {
	rq := &ReadyQueue{}
	_, ok := rq.Dequeue()
	assert.False(t, ok)
	assert.True(t, rq.IsEmpty())
}

func TestReadyQueue_Enqueue_StampsLastReadyTime(t *testing.T) {
	// GIVEN a blocked process
	p := newTestProcess(1, 5)
	p.State = StateBlocked

	// WHEN it is enqueued at t=42
	rq := &ReadyQueue{}
	rq.Enqueue(p, 42)

	// THEN its ready timestamp and state are updated
	assert.Equal(t, int64(42), p.LastReadyTime)
	assert.Equal(t, StateReady, p.State)
	assert.Equal(t, 1, rq.Len())
}

func TestReadyQueue_Enqueue_FinishedProcess_Panics(t *testing.T) {
	p := newTestProcess(1, 5)
	p.markFinished(10)

	rq := &ReadyQueue{}
	assert.Panics(t, func() { rq.Enqueue(p, 11) })
	assert.True(t, rq.IsEmpty())
}

func TestReadyQueue_String(t *testing.T) {
	rq := &ReadyQueue{}
	assert.Equal(t, "[]", rq.String())
	rq.Enqueue(newTestProcess(4, 1), 0)
	rq.Enqueue(newTestProcess(2, 1), 0)
	assert.Equal(t, "[4 2]", rq.String())
}
