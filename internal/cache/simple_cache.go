package cache

import (
	"sync"
	"time"
)

// entry stores a cached value and the moment it was stored.
type entry[V any] struct {
	value    V
	storedAt time.Time
}

// SimpleCache is a lightweight map-backed cache with optional concurrency safety.
// Staleness is checked lazily on Get; there is no background janitor and no capacity bound.
type SimpleCache[K comparable, V any] struct {
	// If muPtr is nil, the cache is NOT goroutine-safe.
	// If muPtr is non-nil, it guards all operations.
	muPtr *sync.RWMutex
	clock func() time.Time

	items map[K]entry[V]
}

// Options controls construction of a SimpleCache.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	// If false, the cache is not safe for concurrent use and may be faster in single-threaded contexts.
	ConcurrencySafe bool

	// Now overrides the clock used to stamp and age entries. Defaults to time.Now.
	Now func() time.Time
}

// NewSimpleCache constructs a new SimpleCache with the given options.
func NewSimpleCache[K comparable, V any](opts Options) *SimpleCache[K, V] {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &SimpleCache[K, V]{
		muPtr: mu,
		clock: opts.Now,
		items: make(map[K]entry[V]),
	}
}

func (c *SimpleCache[K, V]) lockR() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.RLock()
	return c.muPtr.RUnlock
}

func (c *SimpleCache[K, V]) lockW() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.Lock()
	return c.muPtr.Unlock
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

func (c *SimpleCache[K, V]) now() time.Time {
	if c.clock != nil {
		return c.clock()
	}
	return now()
}

// Get implements Cache.Get.
func (c *SimpleCache[K, V]) Get(key K, maxAge time.Duration) (V, bool) {
	unlock := c.lockR()
	defer unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if maxAge > 0 && c.now().Sub(e.storedAt) > maxAge {
		// stale; treated as a miss and left in place until overwritten
		return zero, false
	}
	return e.value, true
}

// Set implements Cache.Set.
func (c *SimpleCache[K, V]) Set(key K, value V) {
	unlock := c.lockW()
	defer unlock()

	c.items[key] = entry[V]{
		value:    value,
		storedAt: c.now(),
	}
}

// Delete implements Cache.Delete.
func (c *SimpleCache[K, V]) Delete(key K) {
	unlock := c.lockW()
	defer unlock()
	delete(c.items, key)
}

// Len implements Cache.Len.
func (c *SimpleCache[K, V]) Len() int {
	unlock := c.lockR()
	defer unlock()
	return len(c.items)
}

// Clear implements Cache.Clear.
func (c *SimpleCache[K, V]) Clear() {
	unlock := c.lockW()
	defer unlock()
	c.items = make(map[K]entry[V])
}

// Ensure SimpleCache implements Cache at compile time.
var _ Cache[any, any] = (*SimpleCache[any, any])(nil)
