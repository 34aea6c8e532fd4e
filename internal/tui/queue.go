package tui

import (
	"context"
	"sync"
)

// intentQueue applies intents to the core one at a time, in the order the
// event loop pushed them. Pushing never blocks, so Update stays responsive
// while the core publishes back into the program.
type intentQueue struct {
	mu      sync.Mutex
	pending []queuedIntent
	wake    chan struct{}

	runMu sync.Mutex
}

type queuedIntent struct {
	fn   func()
	done chan struct{}
}

func newIntentQueue() *intentQueue {
	return &intentQueue{wake: make(chan struct{}, 1)}
}

// push appends fn and returns a channel closed once fn has run.
func (q *intentQueue) push(fn func()) <-chan struct{} {
	it := queuedIntent{fn: fn, done: make(chan struct{})}
	q.mu.Lock()
	q.pending = append(q.pending, it)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return it.done
}

// drain runs every pending intent and reports how many ran.
func (q *intentQueue) drain() int {
	q.runMu.Lock()
	defer q.runMu.Unlock()

	n := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return n
		}
		it := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		it.fn()
		close(it.done)
		n++
	}
}

// run drains the queue whenever an intent arrives until ctx is done.
func (q *intentQueue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
			q.drain()
		}
	}
}
