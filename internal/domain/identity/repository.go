package identity

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Store is the identity-store contract consumed by the lifecycle engine.
// Implementations own the user collection for the duration of a run.
type Store interface {
	// ListAll returns every identity, in deterministic order.
	ListAll(ctx context.Context) ([]User, error)

	// GetByID resolves any identity by its canonical id.
	GetByID(ctx context.Context, id shared.UserID) (User, error)

	// GetStudent resolves an identity that must be a student.
	GetStudent(ctx context.Context, id shared.UserID) (*Student, error)

	// GetRepresentative resolves an identity that must be a representative.
	GetRepresentative(ctx context.Context, id shared.UserID) (*CompanyRepresentative, error)

	// GetStaff resolves an identity that must be a staff member.
	GetStaff(ctx context.Context, id shared.UserID) (*CareerCenterStaff, error)
}

// CredentialVerifier resolves raw credentials against an identity. The
// storage form of credentials is the verifier's concern; the engine only
// ever sees verify/change outcomes.
type CredentialVerifier interface {
	// Verify reports whether the raw credential matches the stored one.
	Verify(user User, raw string) bool

	// Change replaces the credential, failing unless the old one matches.
	Change(user User, oldRaw, newRaw string) bool
}
