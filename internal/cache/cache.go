package cache

import "time"

// Cache defines a minimal key-value cache API whose freshness is decided at read time.
// Implementations may or may not be goroutine-safe depending on configuration.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and stored no longer than maxAge ago.
	// If maxAge <= 0, any stored entry is considered fresh.
	Get(key K, maxAge time.Duration) (V, bool)

	// Set stores the value, overwriting any previous entry and stamping it with the current time.
	Set(key K, value V)

	// Delete removes a key if present.
	Delete(key K)

	// Len returns the number of entries currently stored, fresh or not.
	Len() int

	// Clear removes all entries.
	Clear()
}
