package coordinator

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"starfolk-client/internal/models"
)

// DefaultMinQueryLength is the shortest query that reaches the network.
const DefaultMinQueryLength = 2

// Search drives the result list for the active query. Calls are expected from one
// logical thread; results arrive on their own goroutines.
type Search struct {
	catalog Catalog
	minLen  int
	latest  *Latest[[]models.Character]

	mu    sync.Mutex
	query string
}

// NewSearch builds an idle search coordinator. A minLen below 1 uses DefaultMinQueryLength.
func NewSearch(catalog Catalog, minLen int, onChange func(Snapshot[[]models.Character])) *Search {
	if minLen < 1 {
		minLen = DefaultMinQueryLength
	}
	return &Search{
		catalog: catalog,
		minLen:  minLen,
		latest:  NewLatest(onChange, KeepDataWhileLoading()),
	}
}

// SetQuery makes q the active query. Queries shorter than the minimum settle to an
// empty Idle result without a request. Repeating the active query while it is loading
// or loaded does nothing; repeating it after a failure retries.
func (s *Search) SetQuery(ctx context.Context, q string) {
	q = strings.TrimSpace(q)

	s.mu.Lock()
	prev := s.query
	s.query = q
	s.mu.Unlock()

	if utf8.RuneCountInString(q) < s.minLen {
		s.latest.Settle([]models.Character{})
		return
	}
	if q == prev {
		switch s.latest.Snapshot().State {
		case Loading, Loaded:
			return
		}
	}
	s.latest.Run(ctx, func(ctx context.Context) ([]models.Character, error) {
		return s.catalog.SearchItems(ctx, q)
	})
}

// Deactivate cancels any running search and empties the list. The query is kept
// so the next SetQuery with the same text searches again.
func (s *Search) Deactivate() {
	s.latest.Settle([]models.Character{})
}

// Query returns the active query.
func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Snapshot returns the result list as last presented.
func (s *Search) Snapshot() Snapshot[[]models.Character] { return s.latest.Snapshot() }

// Wait blocks until every started search has returned.
func (s *Search) Wait() { s.latest.Wait() }
