package application

import (
	"time"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Memento is the persistable state of an Application.
type Memento struct {
	ID            string
	StudentID     shared.UserID
	OpportunityID string
	Status        Status
	Accepted      bool
	AppliedAt     time.Time
	DecidedAt     time.Time
}

// Memento exports the application's state.
func (a *Application) Memento() Memento {
	return Memento{
		ID:            a.id,
		StudentID:     a.studentID,
		OpportunityID: a.opportunityID,
		Status:        a.status,
		Accepted:      a.accepted,
		AppliedAt:     a.appliedAt,
		DecidedAt:     a.decidedAt,
	}
}

// Restore rebuilds an Application from a memento, refusing states that
// violate the accepted-implies-successful invariant.
func Restore(m Memento) (*Application, error) {
	a, err := New(m.ID, m.StudentID, m.OpportunityID, m.AppliedAt)
	if err != nil {
		return nil, err
	}
	if !m.Status.IsValid() {
		return nil, shared.NewDomainError("application", "Restore", shared.ErrValidation, "unknown status: "+string(m.Status))
	}
	if m.Accepted && m.Status != StatusSuccessful {
		return nil, shared.NewDomainError("application", "Restore", shared.ErrValidation, "accepted application must be successful")
	}
	a.status = m.Status
	a.accepted = m.Accepted
	a.decidedAt = m.DecidedAt
	return a, nil
}

// WithdrawalMemento is the persistable state of a WithdrawalRequest.
type WithdrawalMemento struct {
	ID            string
	ApplicationID string
	StudentID     shared.UserID
	RequestedAt   time.Time
	Status        ReviewStatus
	ReviewerID    shared.UserID
	ReviewedAt    time.Time
}

// Memento exports the request's state.
func (w *WithdrawalRequest) Memento() WithdrawalMemento {
	return WithdrawalMemento{
		ID:            w.id,
		ApplicationID: w.applicationID,
		StudentID:     w.studentID,
		RequestedAt:   w.requestedAt,
		Status:        w.status,
		ReviewerID:    w.reviewerID,
		ReviewedAt:    w.reviewedAt,
	}
}

// RestoreWithdrawal rebuilds a WithdrawalRequest from a memento.
func RestoreWithdrawal(m WithdrawalMemento) (*WithdrawalRequest, error) {
	w, err := NewWithdrawalRequest(m.ID, m.ApplicationID, m.StudentID, m.RequestedAt)
	if err != nil {
		return nil, err
	}
	if !m.Status.IsValid() {
		return nil, shared.NewDomainError("withdrawal", "Restore", shared.ErrValidation, "unknown review status: "+string(m.Status))
	}
	if m.Status != ReviewPending && m.ReviewerID.IsEmpty() {
		return nil, shared.NewDomainError("withdrawal", "Restore", shared.ErrValidation, "reviewed request must carry a reviewer")
	}
	w.status = m.Status
	w.reviewerID = m.ReviewerID
	w.reviewedAt = m.ReviewedAt
	return w, nil
}
