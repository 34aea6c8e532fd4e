package navigation

import "sync"

// History is the address bar and back/forward stack the Router drives.
// Listen observes only externally triggered moves (back/forward), never Push or Replace.
type History interface {
	Location() string
	Push(path string)
	Replace(path string)
	Listen(fn func(path string)) (unlisten func())
}

// MemoryHistory is an in-process History with an entry stack and a cursor.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []string
	cursor    int
	listeners map[int]func(string)
	nextID    int
}

// NewMemoryHistory starts a history at the given path ("/" when empty).
func NewMemoryHistory(initial string) *MemoryHistory {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHistory{
		entries:   []string{initial},
		listeners: make(map[int]func(string)),
	}
}

func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.cursor]
}

// Push adds path after the current entry and drops any forward entries.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor++
}

func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.cursor] = path
}

func (h *MemoryHistory) Listen(fn func(path string)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Back moves one entry back and notifies listeners. It reports false at the first entry.
func (h *MemoryHistory) Back() bool {
	return h.move(-1)
}

// Forward moves one entry forward and notifies listeners. It reports false at the last entry.
func (h *MemoryHistory) Forward() bool {
	return h.move(1)
}

// Len is the number of entries in the stack.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	next := h.cursor + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.cursor = next
	path := h.entries[next]
	fns := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	// listeners run outside the lock so they may read Location
	for _, fn := range fns {
		fn(path)
	}
	return true
}

var _ History = (*MemoryHistory)(nil)
