package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// REVIEW OPPORTUNITY COMMAND
// A staff member approves or rejects a pending listing. Approval publishes
// the listing; rejection keeps it hidden. Either way the review is a single
// shot: a listing that already carries a decision must be edited (which
// resets it to pending) before it can be reviewed again.
// ═══════════════════════════════════════════════════════════════════════════

// ReviewOpportunityCommand carries a staff decision on a listing.
type ReviewOpportunityCommand struct {
	ActorID       shared.UserID
	OpportunityID string
	Approve       bool
}

// Validate validates the command.
func (c ReviewOpportunityCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("opportunity", "Review", shared.ErrValidation, "actor is required")
	}
	if c.OpportunityID == "" {
		return shared.NewDomainError("opportunity", "Review", shared.ErrValidation, "opportunity id is required")
	}
	return nil
}

// ReviewOpportunityHandler applies staff decisions to listings.
type ReviewOpportunityHandler struct {
	deps *Deps
}

// NewReviewOpportunityHandler creates the handler.
func NewReviewOpportunityHandler(deps *Deps) *ReviewOpportunityHandler {
	return &ReviewOpportunityHandler{deps: deps}
}

// Handle executes the command.
func (h *ReviewOpportunityHandler) Handle(ctx context.Context, cmd ReviewOpportunityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	staff, err := h.deps.Users.GetStaff(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	o, err := h.deps.Opportunities.GetByID(ctx, cmd.OpportunityID)
	if err != nil {
		return err
	}

	eventType := shared.EventOpportunityApproved
	if cmd.Approve {
		err = o.Approve()
	} else {
		err = o.Reject()
		eventType = shared.EventOpportunityRejected
	}
	if err != nil {
		return err
	}

	h.deps.Logger.Info("opportunity reviewed",
		logger.Actor(staff.ID().String()),
		logger.OpportunityID(o.ID()),
		logger.StatusField(o.Status().String()))
	h.deps.publish(ctx, shared.NewBaseEvent(eventType, o.ID(), staff.ID()))

	return h.deps.persist(ctx, colOpportunities)
}
