package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// REQUEST WITHDRAWAL COMMAND
// Available only when staff-reviewed withdrawals are enabled. The student
// files a request against a non-terminal application; the application
// itself is untouched until a staff member approves the request.
// ═══════════════════════════════════════════════════════════════════════════

// RequestWithdrawalCommand files a withdrawal request.
type RequestWithdrawalCommand struct {
	ActorID       shared.UserID
	ApplicationID string
}

// Validate validates the command.
func (c RequestWithdrawalCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("withdrawal", "Request", shared.ErrValidation, "actor is required")
	}
	if c.ApplicationID == "" {
		return shared.NewDomainError("withdrawal", "Request", shared.ErrValidation, "application id is required")
	}
	return nil
}

// RequestWithdrawalResult carries the filed request.
type RequestWithdrawalResult struct {
	Request *application.WithdrawalRequest
}

// RequestWithdrawalHandler files withdrawal requests.
type RequestWithdrawalHandler struct {
	deps *Deps
}

// NewRequestWithdrawalHandler creates the handler.
func NewRequestWithdrawalHandler(deps *Deps) *RequestWithdrawalHandler {
	return &RequestWithdrawalHandler{deps: deps}
}

// Handle executes the command.
func (h *RequestWithdrawalHandler) Handle(ctx context.Context, cmd RequestWithdrawalCommand) (*RequestWithdrawalResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	if !h.deps.StaffReviewedWithdrawals {
		return nil, shared.NewDomainError("withdrawal", "Request", shared.ErrInvalidState,
			"staff-reviewed withdrawals are disabled, withdraw the application directly")
	}

	student, err := h.deps.Users.GetStudent(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	app, err := h.deps.Applications.GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, err
	}
	if !app.IsOwnedBy(student.ID()) {
		return nil, shared.NewDomainError("withdrawal", "Request", shared.ErrForbidden,
			"only the applying student may request withdrawal of this application")
	}
	if app.Status().IsTerminal() {
		return nil, shared.NewDomainError("withdrawal", "Request", shared.ErrInvalidState,
			"application is already "+app.Status().String())
	}

	pending, err := h.deps.Withdrawals.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range pending {
		if w.ApplicationID() == app.ID() {
			return nil, shared.NewDomainError("withdrawal", "Request", shared.ErrConflict,
				"a withdrawal request for this application is already pending review")
		}
	}

	id, err := h.deps.WithdrawalIDs.Next(func(candidate string) (bool, error) {
		return h.deps.Withdrawals.Exists(ctx, candidate)
	})
	if err != nil {
		return nil, shared.WrapError("withdrawal", "Request", shared.ErrConflict,
			"could not allocate a unique withdrawal request id", err)
	}

	req, err := application.NewWithdrawalRequest(id, app.ID(), student.ID(), h.deps.Clock.Now())
	if err != nil {
		return nil, err
	}
	if err := h.deps.Withdrawals.Add(ctx, req); err != nil {
		return nil, err
	}

	h.deps.Logger.Info("withdrawal requested",
		logger.Actor(student.ID().String()),
		logger.WithdrawalID(req.ID()),
		logger.ApplicationID(app.ID()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventWithdrawalRequested, req.ID(), student.ID()).
		WithField("application_id", app.ID()))

	return &RequestWithdrawalResult{Request: req}, h.deps.persist(ctx, colWithdrawals)
}
