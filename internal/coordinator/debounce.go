package coordinator

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last keystroke before a query is emitted.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid values into one emission of the last value.
type Debouncer[T any] struct {
	mu       sync.Mutex
	timer    *time.Timer
	window   time.Duration
	pending  T
	has      bool
	seq      uint64
	callback func(T)
}

// NewDebouncer creates a debouncer that calls callback once window has passed
// without a new value.
func NewDebouncer[T any](window time.Duration, callback func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		window:   window,
		callback: callback,
	}
}

// Add replaces the pending value and restarts the window.
func (d *Debouncer[T]) Add(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = v
	d.has = true
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(seq) })
}

// fire emits the value scheduled as seq; a timer that lost the race with a newer Add
// or with Flush finds a different seq and does nothing.
func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	v, ok := d.takeLocked()
	d.mu.Unlock()

	if ok && d.callback != nil {
		d.callback(v)
	}
}

// Flush emits the pending value now, if any, and blocks until the callback returns.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	v, ok := d.takeLocked()
	d.mu.Unlock()

	if ok && d.callback != nil {
		d.callback(v)
	}
}

// Cancel drops the pending value.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.takeLocked()
}

func (d *Debouncer[T]) takeLocked() (T, bool) {
	var zero T
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if !d.has {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.has = false
	return v, true
}
