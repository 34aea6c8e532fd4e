// Package catalog exposes the remote character catalog as cached, time-bounded operations.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"starfolk-client/internal/cache"
	"starfolk-client/internal/fetch"
	"starfolk-client/internal/models"

	"go.trai.ch/zerr"
)

// Transport performs one cancellable, time-bounded request and returns its JSON body.
//
//go:generate mockgen -source=service.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	Fetch(ctx context.Context, path string, timeout time.Duration) (json.RawMessage, error)
}

// Options tunes resource paths, cache windows and request bounds.
type Options struct {
	Resource string // collection path, e.g. "/characters"

	SearchTTL time.Duration
	ItemTTL   time.Duration

	SearchTimeout   time.Duration
	ItemTimeout     time.Duration
	FeaturedTimeout time.Duration

	FeaturedNames []string
	FeaturedCount int
}

// DefaultOptions mirrors the windows the catalog was tuned with: search results go stale
// faster than character details.
func DefaultOptions() Options {
	return Options{
		Resource:        "/characters",
		SearchTTL:       30 * time.Second,
		ItemTTL:         60 * time.Second,
		SearchTimeout:   8 * time.Second,
		ItemTimeout:     10 * time.Second,
		FeaturedTimeout: 10 * time.Second,
		FeaturedNames:   []string{"Lando Calrissian", "Leia Organa", "Darth Vader"},
		FeaturedCount:   3,
	}
}

// Service combines the request cache and the transport into resource-shaped operations.
type Service struct {
	transport Transport
	cache     *cache.RequestCache
	opts      Options
	logger    *slog.Logger
}

// NewService wires a Service. The cache is shared and owned by the caller.
func NewService(transport Transport, requests *cache.RequestCache, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Resource == "" {
		opts.Resource = DefaultOptions().Resource
	}
	return &Service{
		transport: transport,
		cache:     requests,
		opts:      opts,
		logger:    logger,
	}
}

// NormalizeQuery canonicalizes search text so equivalent queries share a cache entry.
// The remote search is a case-insensitive substring match.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// SearchKey is the cache key of a search result.
func SearchKey(q string) string {
	return "search:" + NormalizeQuery(q)
}

// ItemKey is the cache key of a single character.
func ItemKey(id int) string {
	return "item:" + strconv.Itoa(id)
}

// SearchItems returns the characters whose name matches query.
func (s *Service) SearchItems(ctx context.Context, query string) ([]models.Character, error) {
	q := NormalizeQuery(query)
	path := s.opts.Resource
	if q != "" {
		path += "?search=" + url.QueryEscape(q)
	}
	return s.list(ctx, SearchKey(q), path, s.opts.SearchTimeout)
}

// GetItemByID returns the full record of one character.
func (s *Service) GetItemByID(ctx context.Context, id int) (models.Character, error) {
	key := ItemKey(id)
	path := s.opts.Resource + "/" + strconv.Itoa(id)

	raw, err := s.cache.GetOrFetch(ctx, key, s.opts.ItemTTL, func(ctx context.Context) (json.RawMessage, error) {
		return s.transport.Fetch(ctx, path, s.opts.ItemTimeout)
	})
	if err != nil {
		return models.Character{}, err
	}

	var c models.Character
	if err := json.Unmarshal(raw, &c); err != nil {
		return models.Character{}, decodeError(key, err)
	}
	return c, nil
}

func (s *Service) list(ctx context.Context, key, path string, timeout time.Duration) ([]models.Character, error) {
	raw, err := s.cache.GetOrFetch(ctx, key, s.opts.SearchTTL, func(ctx context.Context) (json.RawMessage, error) {
		return s.transport.Fetch(ctx, path, timeout)
	})
	if err != nil {
		return nil, err
	}

	var out []models.Character
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, decodeError(key, err)
	}
	if out == nil {
		out = []models.Character{}
	}
	return out, nil
}

func decodeError(key string, err error) error {
	return zerr.With(zerr.With(zerr.Wrap(fetch.ErrDecode, "unexpected response shape"), "key", key), "reason", err.Error())
}
