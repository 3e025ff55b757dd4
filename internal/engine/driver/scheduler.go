package driver

import "time"

// FrameQueue is a Scheduler for hosts that own their loop: callbacks
// requested during a frame run on the next call to RunFrame, never the
// current one.
type FrameQueue struct {
	next    FrameID
	pending map[FrameID]func(time.Duration)
	order   []FrameID
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]func(time.Duration))}
}

// RequestFrame queues cb for the next RunFrame.
func (q *FrameQueue) RequestFrame(cb func(now time.Duration)) FrameID {
	q.next++
	q.pending[q.next] = cb
	q.order = append(q.order, q.next)
	return q.next
}

// CancelFrame drops a queued callback. Unknown ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	delete(q.pending, id)
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame runs, in request order, every callback queued before the call.
// It returns how many ran.
func (q *FrameQueue) RunFrame(now time.Duration) int {
	due := q.order
	q.order = nil
	ran := 0
	for _, id := range due {
		cb, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		cb(now)
		ran++
	}
	return ran
}
