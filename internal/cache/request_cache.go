package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Producer performs the asynchronous operation whose JSON result is memoized.
type Producer func(ctx context.Context) (json.RawMessage, error)

// RequestOptions controls construction of a RequestCache.
type RequestOptions struct {
	// DedupeInFlight shares one producer call between concurrent misses on the same key.
	// When false, every concurrent miss invokes its own producer until one of them stores a value.
	DedupeInFlight bool

	// Now overrides the clock used to stamp and age entries.
	Now func() time.Time
}

// RequestCache memoizes keyed JSON results for a caller-chosen time window.
// It is meant to be shared by every coordinator of a process and passed in explicitly.
type RequestCache struct {
	store    *SimpleCache[string, json.RawMessage]
	inFlight *singleflight.Group
}

// NewRequestCache constructs an empty RequestCache.
func NewRequestCache(opts RequestOptions) *RequestCache {
	c := &RequestCache{
		store: NewSimpleCache[string, json.RawMessage](Options{
			ConcurrencySafe: true,
			Now:             opts.Now,
		}),
	}
	if opts.DedupeInFlight {
		c.inFlight = &singleflight.Group{}
	}
	return c
}

// GetOrFetch returns the entry stored under key if it is at most ttl old.
// Otherwise it invokes producer, stores its result under key and returns it.
// A failing producer stores nothing and its error is returned unchanged.
func (c *RequestCache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, producer Producer) (json.RawMessage, error) {
	if v, ok := c.store.Get(key, ttl); ok {
		return v, nil
	}
	if c.inFlight == nil {
		return c.produce(ctx, key, producer)
	}

	// The shared call must outlive any single joiner, so it runs detached from the
	// caller's cancellation; producers still carry their own deadline.
	ch := c.inFlight.DoChan(key, func() (any, error) {
		return c.produce(context.WithoutCancel(ctx), key, producer)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	case <-ctx.Done():
		return nil, zerr.With(zerr.Wrap(context.Cause(ctx), "abandoned shared fetch"), "key", key)
	}
}

func (c *RequestCache) produce(ctx context.Context, key string, producer Producer) (json.RawMessage, error) {
	v, err := producer(ctx)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, v)
	return v, nil
}

// Len reports how many entries are retained, fresh or stale.
func (c *RequestCache) Len() int {
	return c.store.Len()
}
