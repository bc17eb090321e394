package opportunity

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Repository is the contract for the authoritative opportunity collection.
// The lifecycle engine is the only writer for the duration of a run.
type Repository interface {
	// GetByID returns the listing or a NotFound domain error.
	GetByID(ctx context.Context, id string) (*Opportunity, error)

	// List returns every listing in insertion order.
	List(ctx context.Context) ([]*Opportunity, error)

	// ListByOwner returns the listings owned by one representative.
	ListByOwner(ctx context.Context, ownerID shared.UserID) ([]*Opportunity, error)

	// Add inserts a new listing; a duplicate id is a Conflict error.
	Add(ctx context.Context, o *Opportunity) error

	// Remove deletes a listing; an unknown id is a NotFound error.
	Remove(ctx context.Context, id string) error

	// Exists probes an id, used by the identifier generator's collision retry.
	Exists(ctx context.Context, id string) (bool, error)
}
