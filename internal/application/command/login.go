package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// LOGIN COMMAND
// Resolves raw credentials to an acting identity. This is the single place
// where a representative's account status gates behavior: PENDING and
// REJECTED accounts are refused authentication entirely.
// ═══════════════════════════════════════════════════════════════════════════

// LoginCommand carries raw credentials.
type LoginCommand struct {
	// UserID is the raw identifier as typed; it is canonicalized here.
	UserID string

	// Credential is the raw credential to verify.
	Credential string
}

// Validate validates the command.
func (c LoginCommand) Validate() error {
	if c.UserID == "" {
		return shared.NewDomainError("identity", "Login", shared.ErrValidation, "user id is required")
	}
	return nil
}

// LoginResult carries the authenticated identity.
type LoginResult struct {
	User identity.User
	Role identity.Role
}

// LoginHandler authenticates users.
type LoginHandler struct {
	deps *Deps
}

// NewLoginHandler creates the handler.
func NewLoginHandler(deps *Deps) *LoginHandler {
	return &LoginHandler{deps: deps}
}

// Handle executes the command.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	id, err := shared.NewUserID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	user, err := h.deps.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !h.deps.Verifier.Verify(user, cmd.Credential) {
		return nil, shared.NewDomainError("identity", "Login", shared.ErrUnauthorized,
			"credential does not match")
	}
	if rep, ok := user.(*identity.CompanyRepresentative); ok {
		switch rep.AccountStatus() {
		case identity.AccountPending:
			return nil, shared.NewDomainError("identity", "Login", shared.ErrForbidden,
				"representative account is pending career center approval")
		case identity.AccountRejected:
			return nil, shared.NewDomainError("identity", "Login", shared.ErrForbidden,
				"representative account has been rejected")
		}
	}

	h.deps.Logger.Info("user logged in",
		logger.Actor(user.ID().String()),
		logger.RoleField(user.Role().String()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventUserLoggedIn, user.ID().String(), user.ID()))

	return &LoginResult{User: user, Role: user.Role()}, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// CHANGE CREDENTIAL COMMAND
// ═══════════════════════════════════════════════════════════════════════════

// ChangeCredentialCommand replaces an identity's credential.
type ChangeCredentialCommand struct {
	ActorID       shared.UserID
	OldCredential string
	NewCredential string
}

// Validate validates the command.
func (c ChangeCredentialCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("identity", "ChangeCredential", shared.ErrValidation, "actor is required")
	}
	if c.NewCredential == "" {
		return shared.NewDomainError("identity", "ChangeCredential", shared.ErrValidation, "new credential cannot be empty")
	}
	return nil
}

// ChangeCredentialHandler rotates credentials.
type ChangeCredentialHandler struct {
	deps *Deps
}

// NewChangeCredentialHandler creates the handler.
func NewChangeCredentialHandler(deps *Deps) *ChangeCredentialHandler {
	return &ChangeCredentialHandler{deps: deps}
}

// Handle executes the command.
func (h *ChangeCredentialHandler) Handle(ctx context.Context, cmd ChangeCredentialCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	user, err := h.deps.Users.GetByID(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	if !h.deps.Verifier.Change(user, cmd.OldCredential, cmd.NewCredential) {
		return shared.NewDomainError("identity", "ChangeCredential", shared.ErrUnauthorized,
			"old credential does not match")
	}

	h.deps.Logger.Info("credential changed", logger.Actor(user.ID().String()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventCredentialChanged, user.ID().String(), user.ID()))
	return h.deps.persist(ctx, colUsers)
}
