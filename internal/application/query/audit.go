package query

import (
	"context"
	"fmt"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// AUDIT QUERY
// Sweeps the whole data set and reports every broken cross-entity
// property. A healthy engine returns an empty report after any sequence
// of operations; a non-empty report means a bug or corrupted snapshot.
// ═══════════════════════════════════════════════════════════════════════════

// Violation describes one broken property.
type Violation struct {
	Property string
	Subject  string
	Detail   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s [%s]: %s", v.Property, v.Subject, v.Detail)
}

// AuditHandler sweeps the collections for consistency.
type AuditHandler struct {
	deps *Deps

	// MaxPending mirrors the engine cap so the sweep flags overshoot.
	MaxPending int
}

// NewAuditHandler creates the handler.
func NewAuditHandler(deps *Deps, maxPending int) *AuditHandler {
	return &AuditHandler{deps: deps, MaxPending: maxPending}
}

// Handle executes the sweep.
func (h *AuditHandler) Handle(ctx context.Context) ([]Violation, error) {
	h.deps.Guard.RLock()
	defer h.deps.Guard.RUnlock()

	var out []Violation

	opps, err := h.deps.Opportunities.List(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := h.deps.Applications.List(ctx)
	if err != nil {
		return nil, err
	}

	acceptedPerOpp := make(map[string]int)
	acceptedPerStudent := make(map[shared.UserID]int)
	pendingPerStudent := make(map[shared.UserID]int)
	activePair := make(map[string]int)

	for _, a := range apps {
		if a.Accepted() {
			acceptedPerOpp[a.OpportunityID()]++
			acceptedPerStudent[a.StudentID()]++
			if a.Status() != application.StatusSuccessful {
				out = append(out, Violation{
					Property: "accepted implies successful",
					Subject:  a.ID(),
					Detail:   "accepted flag set while status is " + a.Status().String(),
				})
			}
		}
		if a.IsActive() {
			pendingPerStudent[a.StudentID()]++
			key := a.StudentID().String() + "/" + a.OpportunityID()
			activePair[key]++
			if activePair[key] > 1 {
				out = append(out, Violation{
					Property: "no duplicate active application",
					Subject:  key,
					Detail:   "more than one pending application for the same opportunity",
				})
			}
		}
	}

	for _, o := range opps {
		if o.ConfirmedSlots() < 0 || o.ConfirmedSlots() > o.Slots() {
			out = append(out, Violation{
				Property: "slot monotonicity",
				Subject:  o.ID(),
				Detail:   fmt.Sprintf("confirmed=%d slots=%d", o.ConfirmedSlots(), o.Slots()),
			})
		}
		if o.Visible() && o.Status() != opportunity.StatusApproved {
			out = append(out, Violation{
				Property: "approval gates visibility",
				Subject:  o.ID(),
				Detail:   "visible while status is " + o.Status().String(),
			})
		}
		if o.Status() == opportunity.StatusFilled && (o.Visible() || o.ConfirmedSlots() != o.Slots()) {
			out = append(out, Violation{
				Property: "fill consistency",
				Subject:  o.ID(),
				Detail:   fmt.Sprintf("visible=%t confirmed=%d slots=%d", o.Visible(), o.ConfirmedSlots(), o.Slots()),
			})
		}
		if got := acceptedPerOpp[o.ID()]; got != o.ConfirmedSlots() {
			out = append(out, Violation{
				Property: "slot accounting",
				Subject:  o.ID(),
				Detail:   fmt.Sprintf("confirmed=%d but %d accepted applications reference it", o.ConfirmedSlots(), got),
			})
		}
	}

	for studentID, n := range acceptedPerStudent {
		if n > 1 {
			out = append(out, Violation{
				Property: "single accepted offer",
				Subject:  studentID.String(),
				Detail:   fmt.Sprintf("%d accepted applications", n),
			})
		}
	}
	if h.MaxPending > 0 {
		for studentID, n := range pendingPerStudent {
			if n > h.MaxPending {
				out = append(out, Violation{
					Property: "application cap",
					Subject:  studentID.String(),
					Detail:   fmt.Sprintf("%d pending applications, cap is %d", n, h.MaxPending),
				})
			}
		}
	}

	return out, nil
}
