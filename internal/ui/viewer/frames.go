package viewer

import "sync"

// callbackQueue collects callbacks scheduled for a later pass through the
// update loop. The engine's frame scheduler and the chunked initializer both
// hand their continuations here; the model drains the queue when the matching
// message arrives.
type callbackQueue struct {
	mu  sync.Mutex
	fns []func()
}

// Schedule appends fn to the queue.
func (q *callbackQueue) Schedule(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

// Pending reports whether any callbacks are waiting.
func (q *callbackQueue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns) > 0
}

// Flush runs every queued callback. Callbacks scheduled during the flush are
// kept for the next one, so a chunked walk proceeds one chunk per message.
func (q *callbackQueue) Flush() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// RunOne runs the oldest queued callback, if any. Returns true when a
// callback ran.
func (q *callbackQueue) RunOne() bool {
	q.mu.Lock()
	if len(q.fns) == 0 {
		q.mu.Unlock()
		return false
	}
	fn := q.fns[0]
	q.fns = q.fns[1:]
	q.mu.Unlock()

	fn()
	return true
}
