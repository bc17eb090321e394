package command

import (
	"context"
	"fmt"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// SUBMIT APPLICATION COMMAND
// A student applies to an open opportunity. The opportunity must be open
// for this student today (approved, visible, inside its window, with
// vacancies, and passing the eligibility policy), the student must be
// under the pending cap, and must not already hold an active application
// for the same opportunity.
// ═══════════════════════════════════════════════════════════════════════════

// SubmitApplicationCommand carries a new application.
type SubmitApplicationCommand struct {
	ActorID       shared.UserID
	OpportunityID string
}

// Validate validates the command.
func (c SubmitApplicationCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("application", "Submit", shared.ErrValidation, "actor is required")
	}
	if c.OpportunityID == "" {
		return shared.NewDomainError("application", "Submit", shared.ErrValidation, "opportunity id is required")
	}
	return nil
}

// SubmitApplicationResult carries the created application.
type SubmitApplicationResult struct {
	Application *application.Application
}

// SubmitApplicationHandler creates applications.
type SubmitApplicationHandler struct {
	deps *Deps
}

// NewSubmitApplicationHandler creates the handler.
func NewSubmitApplicationHandler(deps *Deps) *SubmitApplicationHandler {
	return &SubmitApplicationHandler{deps: deps}
}

// Handle executes the command.
func (h *SubmitApplicationHandler) Handle(ctx context.Context, cmd SubmitApplicationCommand) (*SubmitApplicationResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	student, err := h.deps.Users.GetStudent(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	o, err := h.deps.Opportunities.GetByID(ctx, cmd.OpportunityID)
	if err != nil {
		return nil, err
	}

	now := h.deps.Clock.Now()
	if !o.IsOpenFor(student, h.deps.Policy, now) {
		return nil, shared.NewDomainError("application", "Submit", shared.ErrIneligible,
			"opportunity is not open for this student")
	}

	pending, err := h.deps.countPendingApplications(ctx, student.ID())
	if err != nil {
		return nil, err
	}
	if pending >= MaxPendingApplications {
		return nil, shared.NewDomainError("application", "Submit", shared.ErrCapacity,
			fmt.Sprintf("student already has %d pending applications, the cap is %d", pending, MaxPendingApplications))
	}

	duplicate, err := h.deps.hasActiveApplication(ctx, student.ID(), o.ID())
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, shared.NewDomainError("application", "Submit", shared.ErrConflict,
			"student already has an active application for this opportunity")
	}

	id, err := h.deps.ApplicationIDs.Next(func(candidate string) (bool, error) {
		return h.deps.Applications.Exists(ctx, candidate)
	})
	if err != nil {
		return nil, shared.WrapError("application", "Submit", shared.ErrConflict,
			"could not allocate a unique application id", err)
	}

	app, err := application.New(id, student.ID(), o.ID(), now)
	if err != nil {
		return nil, err
	}
	if err := h.deps.Applications.Add(ctx, app); err != nil {
		return nil, err
	}
	student.RecordApplication(app.ID())

	h.deps.Logger.Info("application submitted",
		logger.Actor(student.ID().String()),
		logger.ApplicationID(app.ID()),
		logger.OpportunityID(o.ID()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventApplicationSubmitted, app.ID(), student.ID()).
		WithField("opportunity_id", o.ID()))

	return &SubmitApplicationResult{Application: app}, h.deps.persist(ctx, colApplications, colUsers)
}
