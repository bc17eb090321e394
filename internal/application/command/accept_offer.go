package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// ACCEPT OFFER COMMAND
// The student exercises a SUCCESSFUL application. This is the only place
// a confirmed slot is committed, and the sequence runs under the engine
// lock: capacity check, slot confirmation, acceptance marks on both the
// application and the student, then the filled-status recomputation.
// ═══════════════════════════════════════════════════════════════════════════

// AcceptOfferCommand carries an offer acceptance.
type AcceptOfferCommand struct {
	ActorID       shared.UserID
	ApplicationID string
}

// Validate validates the command.
func (c AcceptOfferCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("application", "Accept", shared.ErrValidation, "actor is required")
	}
	if c.ApplicationID == "" {
		return shared.NewDomainError("application", "Accept", shared.ErrValidation, "application id is required")
	}
	return nil
}

// AcceptOfferHandler commits offer acceptances.
type AcceptOfferHandler struct {
	deps *Deps
}

// NewAcceptOfferHandler creates the handler.
func NewAcceptOfferHandler(deps *Deps) *AcceptOfferHandler {
	return &AcceptOfferHandler{deps: deps}
}

// Handle executes the command.
func (h *AcceptOfferHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	student, err := h.deps.Users.GetStudent(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	app, err := h.deps.Applications.GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return err
	}
	if !app.IsOwnedBy(student.ID()) {
		return shared.NewDomainError("application", "Accept", shared.ErrForbidden,
			"only the applying student may accept this offer")
	}
	if app.Status() != application.StatusSuccessful {
		return shared.NewDomainError("application", "Accept", shared.ErrInvalidState,
			"only a successful application can be accepted, current status is "+app.Status().String())
	}
	if student.HasAcceptedOffer() && student.AcceptedApplicationID() != app.ID() {
		return shared.NewDomainError("application", "Accept", shared.ErrConflict,
			"student has already accepted another offer")
	}
	o, err := h.deps.Opportunities.GetByID(ctx, app.OpportunityID())
	if err != nil {
		return err
	}
	if o.Vacancies() <= 0 {
		return shared.NewDomainError("application", "Accept", shared.ErrCapacity,
			"opportunity has no remaining slots")
	}

	if err := app.MarkAccepted(); err != nil {
		return err
	}
	if err := o.ConfirmSlot(); err != nil {
		return err
	}
	if err := student.MarkAccepted(app.ID()); err != nil {
		return err
	}
	before := o.Status()
	o.RecomputeFilled()

	h.deps.Logger.Info("offer accepted",
		logger.Actor(student.ID().String()),
		logger.ApplicationID(app.ID()),
		logger.OpportunityID(o.ID()),
		logger.Slots(o.ConfirmedSlots(), o.Slots()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventOfferAccepted, app.ID(), student.ID()).
		WithField("opportunity_id", o.ID()))
	if o.Status() != before {
		h.deps.publish(ctx, shared.NewBaseEvent(shared.EventOpportunityFilled, o.ID(), student.ID()))
	}

	return h.deps.persist(ctx, colApplications, colOpportunities, colUsers)
}
