package query

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// LIST STUDENT APPLICATIONS QUERY
// ═══════════════════════════════════════════════════════════════════════════

// ListStudentApplicationsQuery lists a student's own applications.
type ListStudentApplicationsQuery struct {
	StudentID shared.UserID
}

// ListStudentApplicationsHandler serves student application history.
type ListStudentApplicationsHandler struct {
	deps *Deps
}

// NewListStudentApplicationsHandler creates the handler.
func NewListStudentApplicationsHandler(deps *Deps) *ListStudentApplicationsHandler {
	return &ListStudentApplicationsHandler{deps: deps}
}

// Handle executes the query.
func (h *ListStudentApplicationsHandler) Handle(ctx context.Context, q ListStudentApplicationsQuery) ([]*application.Application, error) {
	if q.StudentID.IsEmpty() {
		return nil, shared.NewDomainError("application", "ListByStudent", shared.ErrValidation, "student id is required")
	}

	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	if _, err := h.deps.Users.GetStudent(ctx, q.StudentID); err != nil {
		return nil, err
	}
	return h.deps.Applications.ListByStudent(ctx, q.StudentID)
}

// ═══════════════════════════════════════════════════════════════════════════
// LIST OPPORTUNITY APPLICATIONS QUERY
// ═══════════════════════════════════════════════════════════════════════════

// ListOpportunityApplicationsQuery lists the applications filed against one
// of the representative's own listings.
type ListOpportunityApplicationsQuery struct {
	RepresentativeID shared.UserID
	OpportunityID    string
}

// ListOpportunityApplicationsHandler serves representative triage.
type ListOpportunityApplicationsHandler struct {
	deps *Deps
}

// NewListOpportunityApplicationsHandler creates the handler.
func NewListOpportunityApplicationsHandler(deps *Deps) *ListOpportunityApplicationsHandler {
	return &ListOpportunityApplicationsHandler{deps: deps}
}

// Handle executes the query.
func (h *ListOpportunityApplicationsHandler) Handle(ctx context.Context, q ListOpportunityApplicationsQuery) ([]*application.Application, error) {
	if q.RepresentativeID.IsEmpty() {
		return nil, shared.NewDomainError("application", "ListByOpportunity", shared.ErrValidation, "representative id is required")
	}
	if q.OpportunityID == "" {
		return nil, shared.NewDomainError("application", "ListByOpportunity", shared.ErrValidation, "opportunity id is required")
	}

	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	rep, err := h.deps.Users.GetRepresentative(ctx, q.RepresentativeID)
	if err != nil {
		return nil, err
	}
	o, err := h.deps.Opportunities.GetByID(ctx, q.OpportunityID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(rep.ID()) {
		return nil, shared.NewDomainError("application", "ListByOpportunity", shared.ErrForbidden,
			"only the owning representative may list these applications")
	}
	return h.deps.Applications.ListByOpportunity(ctx, o.ID())
}

// ═══════════════════════════════════════════════════════════════════════════
// LIST PENDING WITHDRAWALS QUERY
// ═══════════════════════════════════════════════════════════════════════════

// ListPendingWithdrawalsQuery lists withdrawal requests awaiting review.
type ListPendingWithdrawalsQuery struct {
	StaffID shared.UserID
}

// ListPendingWithdrawalsHandler serves the staff withdrawal queue.
type ListPendingWithdrawalsHandler struct {
	deps *Deps
}

// NewListPendingWithdrawalsHandler creates the handler.
func NewListPendingWithdrawalsHandler(deps *Deps) *ListPendingWithdrawalsHandler {
	return &ListPendingWithdrawalsHandler{deps: deps}
}

// Handle executes the query.
func (h *ListPendingWithdrawalsHandler) Handle(ctx context.Context, q ListPendingWithdrawalsQuery) ([]*application.WithdrawalRequest, error) {
	if q.StaffID.IsEmpty() {
		return nil, shared.NewDomainError("withdrawal", "ListPending", shared.ErrValidation, "staff id is required")
	}

	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	if _, err := h.deps.Users.GetStaff(ctx, q.StaffID); err != nil {
		return nil, err
	}
	return h.deps.Withdrawals.ListPending(ctx)
}
