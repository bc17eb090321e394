package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// REVIEW REPRESENTATIVE COMMAND
// Staff vet company representative accounts. Until an account is approved
// its owner cannot log in, which keeps every other representative
// operation out of reach.
// ═══════════════════════════════════════════════════════════════════════════

// ReviewRepresentativeCommand carries a staff decision on an account.
type ReviewRepresentativeCommand struct {
	ActorID          shared.UserID
	RepresentativeID shared.UserID
	Approve          bool
}

// Validate validates the command.
func (c ReviewRepresentativeCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("identity", "ReviewRepresentative", shared.ErrValidation, "actor is required")
	}
	if c.RepresentativeID.IsEmpty() {
		return shared.NewDomainError("identity", "ReviewRepresentative", shared.ErrValidation, "representative id is required")
	}
	return nil
}

// ReviewRepresentativeHandler vets representative accounts.
type ReviewRepresentativeHandler struct {
	deps *Deps
}

// NewReviewRepresentativeHandler creates the handler.
func NewReviewRepresentativeHandler(deps *Deps) *ReviewRepresentativeHandler {
	return &ReviewRepresentativeHandler{deps: deps}
}

// Handle executes the command.
func (h *ReviewRepresentativeHandler) Handle(ctx context.Context, cmd ReviewRepresentativeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	staff, err := h.deps.Users.GetStaff(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	rep, err := h.deps.Users.GetRepresentative(ctx, cmd.RepresentativeID)
	if err != nil {
		return err
	}
	if err := rep.ReviewAccount(cmd.Approve); err != nil {
		return err
	}

	h.deps.Logger.Info("representative account reviewed",
		logger.Actor(staff.ID().String()),
		logger.F("representative", rep.ID().String()),
		logger.StatusField(string(rep.AccountStatus())))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventRepresentativeStatus, rep.ID().String(), staff.ID()).
		WithField("account_status", string(rep.AccountStatus())))

	return h.deps.persist(ctx, colUsers)
}
