package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// DECIDE APPLICATION COMMAND
// The owning representative approves or rejects a pending application.
// Approval only marks the application SUCCESSFUL; the slot is committed
// later, when the student accepts the offer.
// ═══════════════════════════════════════════════════════════════════════════

// DecideApplicationCommand carries a representative decision.
type DecideApplicationCommand struct {
	ActorID       shared.UserID
	ApplicationID string
	Approve       bool
}

// Validate validates the command.
func (c DecideApplicationCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("application", "Decide", shared.ErrValidation, "actor is required")
	}
	if c.ApplicationID == "" {
		return shared.NewDomainError("application", "Decide", shared.ErrValidation, "application id is required")
	}
	return nil
}

// DecideApplicationHandler applies representative decisions.
type DecideApplicationHandler struct {
	deps *Deps
}

// NewDecideApplicationHandler creates the handler.
func NewDecideApplicationHandler(deps *Deps) *DecideApplicationHandler {
	return &DecideApplicationHandler{deps: deps}
}

// Handle executes the command.
func (h *DecideApplicationHandler) Handle(ctx context.Context, cmd DecideApplicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	rep, err := h.deps.Users.GetRepresentative(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	app, err := h.deps.Applications.GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return err
	}
	o, err := h.deps.Opportunities.GetByID(ctx, app.OpportunityID())
	if err != nil {
		return err
	}
	if !o.IsOwnedBy(rep.ID()) {
		return shared.NewDomainError("application", "Decide", shared.ErrForbidden,
			"only the representative owning the opportunity may decide this application")
	}
	// Approving against a listing that is not published would hand out
	// offers nobody can act on.
	if cmd.Approve && o.Status() != opportunity.StatusApproved {
		return shared.NewDomainError("application", "Decide", shared.ErrInvalidState,
			"cannot approve an application while the opportunity is "+o.Status().String())
	}
	if err := app.MarkDecision(cmd.Approve, h.deps.Clock.Now()); err != nil {
		return err
	}

	h.deps.Logger.Info("application decided",
		logger.Actor(rep.ID().String()),
		logger.ApplicationID(app.ID()),
		logger.StatusField(app.Status().String()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventApplicationDecided, app.ID(), rep.ID()).
		WithField("status", app.Status().String()))

	return h.deps.persist(ctx, colApplications)
}
