package query

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// BROWSE OPPORTUNITIES QUERY
// ═══════════════════════════════════════════════════════════════════════════

// BrowseOpportunitiesQuery lists the opportunities a student can apply to
// right now: approved, visible, inside their window, with vacancies, and
// passing the eligibility policy for this student.
type BrowseOpportunitiesQuery struct {
	StudentID shared.UserID
}

// BrowseOpportunitiesHandler serves student browsing.
type BrowseOpportunitiesHandler struct {
	deps *Deps
}

// NewBrowseOpportunitiesHandler creates the handler.
func NewBrowseOpportunitiesHandler(deps *Deps) *BrowseOpportunitiesHandler {
	return &BrowseOpportunitiesHandler{deps: deps}
}

// Handle executes the query.
func (h *BrowseOpportunitiesHandler) Handle(ctx context.Context, q BrowseOpportunitiesQuery) ([]*opportunity.Opportunity, error) {
	if q.StudentID.IsEmpty() {
		return nil, shared.NewDomainError("opportunity", "Browse", shared.ErrValidation, "student id is required")
	}

	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	student, err := h.deps.Users.GetStudent(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}
	all, err := h.deps.Opportunities.List(ctx)
	if err != nil {
		return nil, err
	}

	now := h.deps.Clock.Now()
	open := make([]*opportunity.Opportunity, 0, len(all))
	for _, o := range all {
		if o.IsOpenFor(student, h.deps.Policy, now) {
			open = append(open, o)
		}
	}
	return open, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// LIST OWNED OPPORTUNITIES QUERY
// ═══════════════════════════════════════════════════════════════════════════

// ListOwnedOpportunitiesQuery lists a representative's own listings in
// every state, including the hidden ones.
type ListOwnedOpportunitiesQuery struct {
	RepresentativeID shared.UserID
}

// ListOwnedOpportunitiesHandler serves representative dashboards.
type ListOwnedOpportunitiesHandler struct {
	deps *Deps
}

// NewListOwnedOpportunitiesHandler creates the handler.
func NewListOwnedOpportunitiesHandler(deps *Deps) *ListOwnedOpportunitiesHandler {
	return &ListOwnedOpportunitiesHandler{deps: deps}
}

// Handle executes the query.
func (h *ListOwnedOpportunitiesHandler) Handle(ctx context.Context, q ListOwnedOpportunitiesQuery) ([]*opportunity.Opportunity, error) {
	if q.RepresentativeID.IsEmpty() {
		return nil, shared.NewDomainError("opportunity", "ListOwned", shared.ErrValidation, "representative id is required")
	}

	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	if _, err := h.deps.Users.GetRepresentative(ctx, q.RepresentativeID); err != nil {
		return nil, err
	}
	return h.deps.Opportunities.ListByOwner(ctx, q.RepresentativeID)
}

// ═══════════════════════════════════════════════════════════════════════════
// LIST PENDING OPPORTUNITIES QUERY
// ═══════════════════════════════════════════════════════════════════════════

// ListPendingOpportunitiesQuery lists listings awaiting staff review.
type ListPendingOpportunitiesQuery struct {
	StaffID shared.UserID
}

// ListPendingOpportunitiesHandler serves the staff review queue.
type ListPendingOpportunitiesHandler struct {
	deps *Deps
}

// NewListPendingOpportunitiesHandler creates the handler.
func NewListPendingOpportunitiesHandler(deps *Deps) *ListPendingOpportunitiesHandler {
	return &ListPendingOpportunitiesHandler{deps: deps}
}

// Handle executes the query.
func (h *ListPendingOpportunitiesHandler) Handle(ctx context.Context, q ListPendingOpportunitiesQuery) ([]*opportunity.Opportunity, error) {
	if q.StaffID.IsEmpty() {
		return nil, shared.NewDomainError("opportunity", "ListPending", shared.ErrValidation, "staff id is required")
	}

	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	if _, err := h.deps.Users.GetStaff(ctx, q.StaffID); err != nil {
		return nil, err
	}
	all, err := h.deps.Opportunities.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]*opportunity.Opportunity, 0, len(all))
	for _, o := range all {
		if o.Status() == opportunity.StatusPending {
			pending = append(pending, o)
		}
	}
	return pending, nil
}
