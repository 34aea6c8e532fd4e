// Package coordinator holds the per-view state machines that turn user intents
// into catalog requests and apply their results in request order.
package coordinator

import (
	"context"

	"starfolk-client/internal/models"
)

// State is the phase of a view's data.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// MarshalText renders the state by name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is the observable state of one coordinator.
// Err is set only in Failed and is never a cancellation.
type Snapshot[T any] struct {
	State      State
	Data       T
	Err        error
	Generation uint64
}

// Catalog is the data access the coordinators need.
type Catalog interface {
	SearchItems(ctx context.Context, query string) ([]models.Character, error)
	GetItemByID(ctx context.Context, id int) (models.Character, error)
	Featured(ctx context.Context) ([]models.Character, error)
}
