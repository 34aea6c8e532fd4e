package coordinator

import (
	"context"
	"sync"

	"starfolk-client/internal/fetch"
)

// Op is one asynchronous attempt whose result a Latest may apply.
type Op[T any] func(ctx context.Context) (T, error)

// LatestOption tunes a Latest.
type LatestOption func(*latestOptions)

type latestOptions struct {
	keepData bool
}

// KeepDataWhileLoading keeps the last data visible while a new attempt runs.
func KeepDataWhileLoading() LatestOption {
	return func(o *latestOptions) { o.keepData = true }
}

// Latest runs asynchronous attempts where only the most recently started one
// may change the visible state. Starting an attempt cancels the previous one;
// a result whose generation is no longer current is dropped whatever the
// transport did with the cancellation.
type Latest[T any] struct {
	opts     latestOptions
	onChange func(Snapshot[T])

	mu     sync.Mutex
	snap   Snapshot[T]
	gen    uint64
	cancel context.CancelFunc
	rev    uint64

	// notifyMu orders change callbacks; delivered is the newest revision handed out.
	notifyMu  sync.Mutex
	delivered uint64

	wg sync.WaitGroup
}

// NewLatest builds an idle Latest. onChange, if set, receives every state change
// in the order the changes happened; it must not call back into the Latest.
func NewLatest[T any](onChange func(Snapshot[T]), opts ...LatestOption) *Latest[T] {
	l := &Latest[T]{onChange: onChange}
	for _, opt := range opts {
		opt(&l.opts)
	}
	return l
}

// Run starts op as the current attempt and returns its generation.
func (l *Latest[T]) Run(ctx context.Context, op Op[T]) uint64 {
	runCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel

	next := Snapshot[T]{State: Loading, Generation: gen}
	if l.opts.keepData {
		next.Data = l.snap.Data
	}
	rev, snap := l.setLocked(next)
	l.wg.Add(1)
	l.mu.Unlock()

	l.notify(rev, snap)

	go func() {
		defer l.wg.Done()
		defer cancel()
		data, err := op(runCtx)
		l.complete(gen, data, err)
	}()
	return gen
}

// Settle cancels any running attempt and shows data as Idle.
func (l *Latest[T]) Settle(data T) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	rev, snap := l.setLocked(Snapshot[T]{State: Idle, Data: data, Generation: l.gen})
	l.mu.Unlock()

	l.notify(rev, snap)
}

func (l *Latest[T]) complete(gen uint64, data T, err error) {
	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.cancel = nil

	var next Snapshot[T]
	switch {
	case err == nil:
		next = Snapshot[T]{State: Loaded, Data: data, Generation: gen}
	case fetch.IsCancelled(err):
		// cancelled by an outer context while still current: not a failure
		next = Snapshot[T]{State: Idle, Data: l.snap.Data, Generation: gen}
	default:
		next = Snapshot[T]{State: Failed, Err: err, Generation: gen}
	}
	rev, snap := l.setLocked(next)
	l.mu.Unlock()

	l.notify(rev, snap)
}

func (l *Latest[T]) setLocked(next Snapshot[T]) (uint64, Snapshot[T]) {
	l.snap = next
	l.rev++
	return l.rev, next
}

func (l *Latest[T]) notify(rev uint64, snap Snapshot[T]) {
	if l.onChange == nil {
		return
	}
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	if rev <= l.delivered {
		return
	}
	l.delivered = rev
	l.onChange(snap)
}

// Snapshot returns the current state.
func (l *Latest[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Wait blocks until every started attempt has returned.
func (l *Latest[T]) Wait() {
	l.wg.Wait()
}
