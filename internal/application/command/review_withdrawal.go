package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// REVIEW WITHDRAWAL COMMAND
// A staff member rules on a pending withdrawal request. Approval executes
// the withdrawal in the same locked sequence, so the request decision and
// the application transition cannot diverge. Rejection leaves the
// application as it was.
// ═══════════════════════════════════════════════════════════════════════════

// ReviewWithdrawalCommand carries a staff decision on a request.
type ReviewWithdrawalCommand struct {
	ActorID      shared.UserID
	WithdrawalID string
	Approve      bool
}

// Validate validates the command.
func (c ReviewWithdrawalCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("withdrawal", "Review", shared.ErrValidation, "actor is required")
	}
	if c.WithdrawalID == "" {
		return shared.NewDomainError("withdrawal", "Review", shared.ErrValidation, "withdrawal id is required")
	}
	return nil
}

// ReviewWithdrawalHandler rules on withdrawal requests.
type ReviewWithdrawalHandler struct {
	deps *Deps
}

// NewReviewWithdrawalHandler creates the handler.
func NewReviewWithdrawalHandler(deps *Deps) *ReviewWithdrawalHandler {
	return &ReviewWithdrawalHandler{deps: deps}
}

// Handle executes the command.
func (h *ReviewWithdrawalHandler) Handle(ctx context.Context, cmd ReviewWithdrawalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	staff, err := h.deps.Users.GetStaff(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	req, err := h.deps.Withdrawals.GetByID(ctx, cmd.WithdrawalID)
	if err != nil {
		return err
	}
	app, err := h.deps.Applications.GetByID(ctx, req.ApplicationID())
	if err != nil {
		return err
	}

	// An application that reached a terminal state through some other path
	// has nothing left to withdraw. Refuse before consuming the one-shot
	// review so staff can still reject the stale request.
	if cmd.Approve && app.Status().IsTerminal() {
		return shared.NewDomainError("withdrawal", "Review", shared.ErrInvalidState,
			"application is already "+app.Status().String()+", the request can only be rejected")
	}

	if err := req.Review(staff.ID(), cmd.Approve, h.deps.Clock.Now()); err != nil {
		return err
	}

	h.deps.Logger.Info("withdrawal reviewed",
		logger.Actor(staff.ID().String()),
		logger.WithdrawalID(req.ID()),
		logger.StatusField(req.Status().String()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventWithdrawalReviewed, req.ID(), staff.ID()).
		WithField("approved", cmd.Approve).
		WithField("application_id", app.ID()))

	if !cmd.Approve {
		return h.deps.persist(ctx, colWithdrawals)
	}

	if err := h.deps.executeWithdrawal(ctx, staff.ID(), app); err != nil {
		return err
	}
	return h.deps.persist(ctx, colWithdrawals)
}

// ═══════════════════════════════════════════════════════════════════════════
// RESET WITHDRAWAL REVIEW COMMAND
// Clears the recorded decision on a reviewed request so it can be re-ruled,
// for correcting a mistaken rejection. An approved request whose withdrawal
// already executed cannot be undone here.
// ═══════════════════════════════════════════════════════════════════════════

// ResetWithdrawalReviewCommand reopens a reviewed request.
type ResetWithdrawalReviewCommand struct {
	ActorID      shared.UserID
	WithdrawalID string
}

// Validate validates the command.
func (c ResetWithdrawalReviewCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("withdrawal", "ResetReview", shared.ErrValidation, "actor is required")
	}
	if c.WithdrawalID == "" {
		return shared.NewDomainError("withdrawal", "ResetReview", shared.ErrValidation, "withdrawal id is required")
	}
	return nil
}

// ResetWithdrawalReviewHandler reopens reviewed requests.
type ResetWithdrawalReviewHandler struct {
	deps *Deps
}

// NewResetWithdrawalReviewHandler creates the handler.
func NewResetWithdrawalReviewHandler(deps *Deps) *ResetWithdrawalReviewHandler {
	return &ResetWithdrawalReviewHandler{deps: deps}
}

// Handle executes the command.
func (h *ResetWithdrawalReviewHandler) Handle(ctx context.Context, cmd ResetWithdrawalReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	staff, err := h.deps.Users.GetStaff(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	req, err := h.deps.Withdrawals.GetByID(ctx, cmd.WithdrawalID)
	if err != nil {
		return err
	}
	app, err := h.deps.Applications.GetByID(ctx, req.ApplicationID())
	if err != nil {
		return err
	}
	// An executed withdrawal is final. Only a rejection can be reopened.
	if req.Status() == application.ReviewApproved {
		return shared.NewDomainError("withdrawal", "ResetReview", shared.ErrInvalidState,
			"an approved request has already executed and cannot be reopened")
	}
	if app.Status().IsTerminal() {
		return shared.NewDomainError("withdrawal", "ResetReview", shared.ErrInvalidState,
			"application is already "+app.Status().String()+", nothing to re-review")
	}
	if err := req.ResetReview(); err != nil {
		return err
	}

	h.deps.Logger.Info("withdrawal review reset",
		logger.Actor(staff.ID().String()),
		logger.WithdrawalID(req.ID()))

	return h.deps.persist(ctx, colWithdrawals)
}
