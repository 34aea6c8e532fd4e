package coordinator

import (
	"context"

	"starfolk-client/internal/models"
)

// Featured drives the featured characters sidebar.
type Featured struct {
	catalog Catalog
	latest  *Latest[[]models.Character]
}

// NewFeatured creates an idle sidebar reporting every change to onChange.
func NewFeatured(catalog Catalog, onChange func(Snapshot[[]models.Character])) *Featured {
	return &Featured{
		catalog: catalog,
		latest:  NewLatest(onChange, KeepDataWhileLoading()),
	}
}

// Load fetches the featured set unless it is already loading or loaded.
func (f *Featured) Load(ctx context.Context) {
	switch f.latest.Snapshot().State {
	case Loading, Loaded:
		return
	}
	f.Reload(ctx)
}

// Reload fetches the featured set, superseding a load in progress.
func (f *Featured) Reload(ctx context.Context) {
	f.latest.Run(ctx, f.catalog.Featured)
}

// Snapshot returns the featured set as last presented.
func (f *Featured) Snapshot() Snapshot[[]models.Character] { return f.latest.Snapshot() }

// Wait blocks until a load in progress has returned.
func (f *Featured) Wait() { f.latest.Wait() }
