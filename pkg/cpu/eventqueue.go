package cpu

import "container/heap"

// eventHeap implements container/heap.Interface ordered by (Time, seq), a
// heap-backed replacement for an insertion-sorted list.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}

// EventQueue is the DES engine's event queue: insert (stable FIFO on equal
// timestamps), pop-earliest, peek-earliest-time, and a cancellation
// primitive for the preemptive-priority policies.
type EventQueue struct {
	h       eventHeap
	nextSeq int64
}

// NewEventQueue returns an empty, ready-to-use queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.h)
	return q
}

// Insert adds an event, assigning it the next insertion-order sequence
// number so that equal-timestamp events drain in FIFO order.
func (q *EventQueue) Insert(e *Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.h, e)
}

// PopEarliest removes and returns the earliest-timestamped event, or nil if
// the queue is empty.
func (q *EventQueue) PopEarliest() *Event {
	if q.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*Event)
}

// PeekTime returns the timestamp of the earliest event, or -1 if empty.
func (q *EventQueue) PeekTime() int {
	if q.h.Len() == 0 {
		return -1
	}
	return q.h[0].Time
}

// Empty reports whether the queue has no events.
func (q *EventQueue) Empty() bool { return q.h.Len() == 0 }

// RemoveFutureEventFor scans for the single event targeting p whose
// timestamp differs from now, and removes it. Returns whether one was
// found and removed. Used only by the preemptive-priority scheduler: when a
// higher-priority process arrives, any already-scheduled block/preempt
// event for the current runner becomes stale and must be rebuilt from the
// current instant.
func (q *EventQueue) RemoveFutureEventFor(p *Process, now int) bool {
	for i, e := range q.h {
		if e.Proc == p && e.Time != now {
			heap.Remove(&q.h, i)
			return true
		}
	}
	return false
}
