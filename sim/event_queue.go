package sim

import "container/heap"

// eventHeap implements heap.Interface over EventLess.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return EventLess(h[i], h[j]) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue is a priority queue of pending events with deterministic ordering.
// It grows as needed; the zero value is ready to use.
type EventQueue struct {
	events eventHeap
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

// Push adds an event in O(log n).
func (q *EventQueue) Push(ev Event) {
	heap.Push(&q.events, ev)
}

// Pop removes and returns the earliest event. ok is false when the queue is empty.
func (q *EventQueue) Pop() (ev Event, ok bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return heap.Pop(&q.events).(Event), true
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// IsEmpty reports whether no events are pending.
func (q *EventQueue) IsEmpty() bool { return len(q.events) == 0 }

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return len(q.events) }
