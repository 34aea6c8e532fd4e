package coordinator

import (
	"strings"
	"sync"
	"time"
)

// SearchInput turns search box edits into query emissions: edits are debounced,
// submit and clear emit at once.
type SearchInput struct {
	mu       sync.Mutex
	text     string
	debounce *Debouncer[string]
}

// NewSearchInput emits trimmed queries to emit. A non-positive window uses DefaultDebounce.
func NewSearchInput(window time.Duration, emit func(string)) *SearchInput {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &SearchInput{
		debounce: NewDebouncer(window, emit),
	}
}

// TextChanged records the box content and schedules its emission.
func (in *SearchInput) TextChanged(text string) {
	in.mu.Lock()
	in.text = text
	in.mu.Unlock()
	in.debounce.Add(strings.TrimSpace(text))
}

// Submit emits the current text immediately and drops the scheduled emission.
func (in *SearchInput) Submit() {
	in.debounce.Add(strings.TrimSpace(in.Text()))
	in.debounce.Flush()
}

// Clear empties the box and emits the empty query immediately.
func (in *SearchInput) Clear() {
	in.mu.Lock()
	in.text = ""
	in.mu.Unlock()
	in.debounce.Add("")
	in.debounce.Flush()
}

// Stop drops any scheduled emission.
func (in *SearchInput) Stop() {
	in.debounce.Cancel()
}

// Text returns the box content as typed.
func (in *SearchInput) Text() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.text
}
