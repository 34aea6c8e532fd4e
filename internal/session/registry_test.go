package session

import (
	"context"
	"testing"
	"time"

	"starfolk-client/internal/app"
	"starfolk-client/internal/logger"
	"starfolk-client/internal/models"

	"github.com/stretchr/testify/require"
)

type emptyCatalog struct{}

func (emptyCatalog) SearchItems(context.Context, string) ([]models.Character, error) {
	return []models.Character{}, nil
}

func (emptyCatalog) GetItemByID(_ context.Context, id int) (models.Character, error) {
	return models.Character{ID: id}, nil
}

func (emptyCatalog) Featured(context.Context) ([]models.Character, error) {
	return []models.Character{}, nil
}

func newRegistry(ttl time.Duration) *Registry {
	return NewRegistry(func() *app.App {
		return app.New(emptyCatalog{}, app.Options{Logger: logger.Discard()})
	}, ttl, logger.Discard())
}

func TestRegistry_CreateGetRemove(t *testing.T) {
	r := newRegistry(time.Hour)
	t.Cleanup(r.Close)

	s := r.Create()
	require.NotEmpty(t, s.ID)
	require.Equal(t, 1, r.Len())

	got, ok := r.Get(s.ID)
	require.True(t, ok)
	require.Same(t, s, got)

	require.True(t, r.Remove(s.ID))
	require.False(t, r.Remove(s.ID))
	_, ok = r.Get(s.ID)
	require.False(t, ok)
}

func TestRegistry_ReapsIdleSessionsOnCreate(t *testing.T) {
	r := newRegistry(time.Minute)
	t.Cleanup(r.Close)

	var removed []string
	r.OnRemove(func(s *Session) { removed = append(removed, s.ID) })

	base := time.Now()
	r.now = func() time.Time { return base }
	idle := r.Create()
	active := r.Create()

	base = base.Add(50 * time.Second)
	_, ok := r.Get(active.ID)
	require.True(t, ok)

	base = base.Add(30 * time.Second)
	r.Create()

	_, ok = r.Get(idle.ID)
	require.False(t, ok)
	_, ok = r.Get(active.ID)
	require.True(t, ok)
	require.Equal(t, 2, r.Len())
	require.Equal(t, []string{idle.ID}, removed)
}

func TestRegistry_TouchKeepsSessionAlive(t *testing.T) {
	r := newRegistry(time.Minute)
	t.Cleanup(r.Close)

	base := time.Now()
	r.now = func() time.Time { return base }
	s := r.Create()

	for range 5 {
		base = base.Add(30 * time.Second)
		require.True(t, r.Touch(s.ID))
		r.Create()
	}
	require.Equal(t, base, s.LastSeen())

	_, ok := r.Get(s.ID)
	require.True(t, ok)
	require.False(t, r.Touch("missing"))
}
