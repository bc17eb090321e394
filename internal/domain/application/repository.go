package application

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Repository is the contract for the authoritative application collection.
type Repository interface {
	// GetByID returns the application or a NotFound domain error.
	GetByID(ctx context.Context, id string) (*Application, error)

	// List returns every application in insertion order.
	List(ctx context.Context) ([]*Application, error)

	// ListByStudent returns one student's applications in insertion order.
	ListByStudent(ctx context.Context, studentID shared.UserID) ([]*Application, error)

	// ListByOpportunity returns the applications targeting one listing.
	ListByOpportunity(ctx context.Context, opportunityID string) ([]*Application, error)

	// Add inserts a new application; a duplicate id is a Conflict error.
	Add(ctx context.Context, a *Application) error

	// Exists probes an id, used by the identifier generator's collision retry.
	Exists(ctx context.Context, id string) (bool, error)
}

// WithdrawalRepository is the contract for the withdrawal-request collection.
type WithdrawalRepository interface {
	// GetByID returns the request or a NotFound domain error.
	GetByID(ctx context.Context, id string) (*WithdrawalRequest, error)

	// List returns every request in insertion order.
	List(ctx context.Context) ([]*WithdrawalRequest, error)

	// ListPending returns the requests still awaiting review.
	ListPending(ctx context.Context) ([]*WithdrawalRequest, error)

	// Add inserts a new request; a duplicate id is a Conflict error.
	Add(ctx context.Context, w *WithdrawalRequest) error

	// Exists probes an id, used by the identifier generator's collision retry.
	Exists(ctx context.Context, id string) (bool, error)
}
