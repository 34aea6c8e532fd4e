package coordinator_test

import (
	"context"
	"sync"

	"starfolk-client/internal/models"
)

// fakeCatalog answers through per-operation funcs and counts calls.
type fakeCatalog struct {
	mu       sync.Mutex
	calls    map[string]int
	search   func(ctx context.Context, q string) ([]models.Character, error)
	item     func(ctx context.Context, id int) (models.Character, error)
	featured func(ctx context.Context) ([]models.Character, error)
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{calls: make(map[string]int)}
}

func (f *fakeCatalog) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeCatalog) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeCatalog) SearchItems(ctx context.Context, q string) ([]models.Character, error) {
	f.record("search")
	return f.search(ctx, q)
}

func (f *fakeCatalog) GetItemByID(ctx context.Context, id int) (models.Character, error) {
	f.record("item")
	return f.item(ctx, id)
}

func (f *fakeCatalog) Featured(ctx context.Context) ([]models.Character, error) {
	f.record("featured")
	return f.featured(ctx)
}

// snapshots collects every change a coordinator reports.
type snapshots[T any] struct {
	mu  sync.Mutex
	all []T
}

func (s *snapshots[T]) add(v T) {
	s.mu.Lock()
	s.all = append(s.all, v)
	s.mu.Unlock()
}

func (s *snapshots[T]) list() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.all...)
}

func names(cs []models.Character) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}
