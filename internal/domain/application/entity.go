// Package application contains the student-application state machine:
// PENDING -> {SUCCESSFUL, UNSUCCESSFUL} by one representative decision;
// SUCCESSFUL -> accepted by the student; {PENDING, SUCCESSFUL} -> WITHDRAWN.
// It also models the staff-reviewed withdrawal request.
package application

import (
	"strings"
	"time"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Status enumerates the decision lifecycle of an application.
type Status string

const (
	StatusPending      Status = "PENDING"
	StatusSuccessful   Status = "SUCCESSFUL"
	StatusUnsuccessful Status = "UNSUCCESSFUL"
	StatusWithdrawn    Status = "WITHDRAWN"
)

// IsValid checks if the status belongs to the enumerated set.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccessful, StatusUnsuccessful, StatusWithdrawn:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string { return string(s) }

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusUnsuccessful || s == StatusWithdrawn
}

// Application is one student's bid for one opportunity. The student and
// opportunity references are immutable relational links, resolved through
// the engine's authoritative collections.
//
// Invariant: accepted == true implies status == SUCCESSFUL.
type Application struct {
	id            string
	studentID     shared.UserID
	opportunityID string

	status    Status
	accepted  bool
	appliedAt time.Time
	decidedAt time.Time
}

// New creates an application in PENDING.
func New(id string, studentID shared.UserID, opportunityID string, appliedAt time.Time) (*Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewDomainError("application", "New", shared.ErrValidation, "application id is required")
	}
	if studentID.IsEmpty() {
		return nil, shared.NewDomainError("application", "New", shared.ErrValidation, "applying student is required")
	}
	if strings.TrimSpace(opportunityID) == "" {
		return nil, shared.NewDomainError("application", "New", shared.ErrValidation, "target opportunity is required")
	}
	return &Application{
		id:            id,
		studentID:     studentID,
		opportunityID: opportunityID,
		status:        StatusPending,
		appliedAt:     appliedAt,
	}, nil
}

// ID returns the immutable identifier.
func (a *Application) ID() string { return a.id }

// StudentID returns the applying student's id.
func (a *Application) StudentID() shared.UserID { return a.studentID }

// OpportunityID returns the target opportunity's id.
func (a *Application) OpportunityID() string { return a.opportunityID }

// Status returns the decision status.
func (a *Application) Status() Status { return a.status }

// Accepted reports whether the student has exercised acceptance.
func (a *Application) Accepted() bool { return a.accepted }

// AppliedAt returns the submission timestamp.
func (a *Application) AppliedAt() time.Time { return a.appliedAt }

// DecidedAt returns the timestamp of the first decision or withdrawal;
// zero while the application is still PENDING.
func (a *Application) DecidedAt() time.Time { return a.decidedAt }

// IsActive reports whether the application counts against the per-student
// pending cap and the no-duplicate rule.
func (a *Application) IsActive() bool { return a.status == StatusPending }

// IsOwnedBy reports whether the given student owns this application.
func (a *Application) IsOwnedBy(studentID shared.UserID) bool {
	return a.studentID.Equals(studentID)
}

// MarkDecision records the one-shot representative decision. Deciding a
// non-PENDING application is an invalid-state error. Slot accounting is
// untouched here: capacity moves only on acceptance.
func (a *Application) MarkDecision(approve bool, at time.Time) error {
	if a.status != StatusPending {
		return shared.NewDomainError("application", "MarkDecision", shared.ErrInvalidState,
			"only a pending application can be decided, current status is "+string(a.status))
	}
	if approve {
		a.status = StatusSuccessful
	} else {
		a.status = StatusUnsuccessful
	}
	a.decidedAt = at
	return nil
}

// MarkAccepted records the student's one-shot acceptance of a successful
// offer. Cross-entity checks (single accepted offer, remaining capacity)
// belong to the engine.
func (a *Application) MarkAccepted() error {
	if a.status != StatusSuccessful {
		return shared.NewDomainError("application", "MarkAccepted", shared.ErrInvalidState,
			"only a successful application can be accepted, current status is "+string(a.status))
	}
	if a.accepted {
		return shared.NewDomainError("application", "MarkAccepted", shared.ErrInvalidState,
			"offer is already accepted")
	}
	a.accepted = true
	return nil
}

// Withdraw retracts the application from any non-terminal state. It is
// terminal and clears the accepted flag; withdrawing twice is rejected.
func (a *Application) Withdraw(at time.Time) error {
	if a.status.IsTerminal() {
		return shared.NewDomainError("application", "Withdraw", shared.ErrInvalidState,
			"application is already "+string(a.status))
	}
	a.status = StatusWithdrawn
	a.accepted = false
	a.decidedAt = at
	return nil
}
