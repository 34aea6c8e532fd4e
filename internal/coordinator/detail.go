package coordinator

import (
	"context"
	"sync"

	"starfolk-client/internal/models"
)

// Detail drives the profile of the selected character.
type Detail struct {
	catalog Catalog
	latest  *Latest[*models.Character]

	mu sync.Mutex
	id int
}

// NewDetail creates an idle profile view reporting every change to onChange.
func NewDetail(catalog Catalog, onChange func(Snapshot[*models.Character])) *Detail {
	return &Detail{
		catalog: catalog,
		latest:  NewLatest(onChange),
	}
}

// Show loads character id. The previous profile is cleared while it loads.
func (d *Detail) Show(ctx context.Context, id int) {
	d.mu.Lock()
	prev := d.id
	d.id = id
	d.mu.Unlock()

	if id == prev {
		switch d.latest.Snapshot().State {
		case Loading, Loaded:
			return
		}
	}
	d.latest.Run(ctx, func(ctx context.Context) (*models.Character, error) {
		c, err := d.catalog.GetItemByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &c, nil
	})
}

// Deactivate cancels any running load and clears the profile.
func (d *Detail) Deactivate() {
	d.mu.Lock()
	d.id = 0
	d.mu.Unlock()
	d.latest.Settle(nil)
}

// ID returns the character being shown, or 0.
func (d *Detail) ID() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// Snapshot returns the profile as last presented.
func (d *Detail) Snapshot() Snapshot[*models.Character] { return d.latest.Snapshot() }

// Wait blocks until a load in progress has returned.
func (d *Detail) Wait() { d.latest.Wait() }
