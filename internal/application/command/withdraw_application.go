package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// WITHDRAW APPLICATION COMMAND
// Moves a non-terminal application to WITHDRAWN. The owning student or a
// staff member may withdraw; representatives never can. Withdrawing an
// accepted application releases its confirmed slot, which can reopen a
// FILLED opportunity.
//
// When staff-reviewed withdrawals are enabled, students cannot call this
// directly; they file a request and a staff reviewer executes it through
// ReviewWithdrawalHandler.
// ═══════════════════════════════════════════════════════════════════════════

// WithdrawApplicationCommand withdraws an application.
type WithdrawApplicationCommand struct {
	ActorID       shared.UserID
	ApplicationID string
}

// Validate validates the command.
func (c WithdrawApplicationCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("application", "Withdraw", shared.ErrValidation, "actor is required")
	}
	if c.ApplicationID == "" {
		return shared.NewDomainError("application", "Withdraw", shared.ErrValidation, "application id is required")
	}
	return nil
}

// WithdrawApplicationHandler withdraws applications.
type WithdrawApplicationHandler struct {
	deps *Deps
}

// NewWithdrawApplicationHandler creates the handler.
func NewWithdrawApplicationHandler(deps *Deps) *WithdrawApplicationHandler {
	return &WithdrawApplicationHandler{deps: deps}
}

// Handle executes the command.
func (h *WithdrawApplicationHandler) Handle(ctx context.Context, cmd WithdrawApplicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	actor, err := h.deps.Users.GetByID(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	app, err := h.deps.Applications.GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return err
	}

	switch actor.Role() {
	case identity.RoleStudent:
		if !app.IsOwnedBy(actor.ID()) {
			return shared.NewDomainError("application", "Withdraw", shared.ErrForbidden,
				"only the applying student may withdraw this application")
		}
		if h.deps.StaffReviewedWithdrawals {
			return shared.NewDomainError("application", "Withdraw", shared.ErrInvalidState,
				"withdrawals require staff review, file a withdrawal request instead")
		}
	case identity.RoleStaff:
		// staff may withdraw on a student's behalf
	default:
		return shared.NewDomainError("application", "Withdraw", shared.ErrForbidden,
			"representatives cannot withdraw applications")
	}

	return h.deps.executeWithdrawal(ctx, actor.ID(), app)
}

// executeWithdrawal performs the actual state change. It is shared with the
// staff review flow, which has already satisfied its own authorization.
// Callers hold the engine lock. Every lookup happens before the first
// mutation, so a failed withdrawal leaves all three entities untouched.
func (d *Deps) executeWithdrawal(ctx context.Context, actorID shared.UserID, app *application.Application) error {
	student, err := d.Users.GetStudent(ctx, app.StudentID())
	if err != nil {
		return err
	}

	var o *opportunity.Opportunity
	if app.Accepted() {
		o, err = d.Opportunities.GetByID(ctx, app.OpportunityID())
		if err != nil && !shared.IsNotFound(err) {
			return err
		}
		// A listing that no longer exists has no slot left to release;
		// the student's accepted reference still has to be cleared.
	}

	if err := app.Withdraw(d.Clock.Now()); err != nil {
		return err
	}

	cols := []collection{colApplications}

	if o != nil {
		if err := o.ReleaseSlot(); err != nil {
			return err
		}
		before := o.Status()
		o.RecomputeFilled()
		if o.Status() != before {
			d.publish(ctx, shared.NewBaseEvent(shared.EventOpportunityReopened, o.ID(), actorID))
		}
		cols = append(cols, colOpportunities)
	}

	student.ClearAccepted(app.ID())
	cols = append(cols, colUsers)

	d.Logger.Info("application withdrawn",
		logger.Actor(actorID.String()),
		logger.ApplicationID(app.ID()))
	d.publish(ctx, shared.NewBaseEvent(shared.EventApplicationWithdrawn, app.ID(), actorID))

	return d.persist(ctx, cols...)
}
