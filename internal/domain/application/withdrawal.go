package application

import (
	"strings"
	"time"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// ReviewStatus enumerates the staff review of a withdrawal request.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// IsValid checks if the review status belongs to the enumerated set.
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

// String returns the string representation.
func (s ReviewStatus) String() string { return string(s) }

// WithdrawalRequest is a student-initiated, staff-reviewed request to
// retract an application. Review is a one-shot transition out of PENDING;
// ResetReview is the only way back.
type WithdrawalRequest struct {
	id            string
	applicationID string
	studentID     shared.UserID
	requestedAt   time.Time

	status     ReviewStatus
	reviewerID shared.UserID
	reviewedAt time.Time
}

// NewWithdrawalRequest creates a request pending staff review.
func NewWithdrawalRequest(id, applicationID string, studentID shared.UserID, requestedAt time.Time) (*WithdrawalRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewDomainError("withdrawal", "New", shared.ErrValidation, "request id is required")
	}
	if strings.TrimSpace(applicationID) == "" {
		return nil, shared.NewDomainError("withdrawal", "New", shared.ErrValidation, "application reference is required")
	}
	if studentID.IsEmpty() {
		return nil, shared.NewDomainError("withdrawal", "New", shared.ErrValidation, "requesting student is required")
	}
	return &WithdrawalRequest{
		id:            id,
		applicationID: applicationID,
		studentID:     studentID,
		requestedAt:   requestedAt,
		status:        ReviewPending,
	}, nil
}

// ID returns the request identifier.
func (w *WithdrawalRequest) ID() string { return w.id }

// ApplicationID returns the referenced application's id.
func (w *WithdrawalRequest) ApplicationID() string { return w.applicationID }

// StudentID returns the requesting student's id.
func (w *WithdrawalRequest) StudentID() shared.UserID { return w.studentID }

// RequestedAt returns the request timestamp.
func (w *WithdrawalRequest) RequestedAt() time.Time { return w.requestedAt }

// Status returns the review status.
func (w *WithdrawalRequest) Status() ReviewStatus { return w.status }

// ReviewerID returns the reviewing staff's id; empty while PENDING.
func (w *WithdrawalRequest) ReviewerID() shared.UserID { return w.reviewerID }

// ReviewedAt returns the review timestamp; zero while PENDING.
func (w *WithdrawalRequest) ReviewedAt() time.Time { return w.reviewedAt }

// IsPending reports whether the request still awaits review.
func (w *WithdrawalRequest) IsPending() bool { return w.status == ReviewPending }

// Review records the one-shot staff decision.
func (w *WithdrawalRequest) Review(staffID shared.UserID, approve bool, at time.Time) error {
	if w.status != ReviewPending {
		return shared.NewDomainError("withdrawal", "Review", shared.ErrInvalidState,
			"withdrawal request is already "+string(w.status))
	}
	if staffID.IsEmpty() {
		return shared.NewDomainError("withdrawal", "Review", shared.ErrValidation, "reviewing staff is required")
	}
	if approve {
		w.status = ReviewApproved
	} else {
		w.status = ReviewRejected
	}
	w.reviewerID = staffID
	w.reviewedAt = at
	return nil
}

// ResetReview returns a reviewed request to PENDING, clearing the reviewer
// and the review timestamp.
func (w *WithdrawalRequest) ResetReview() error {
	if w.status == ReviewPending {
		return shared.NewDomainError("withdrawal", "ResetReview", shared.ErrInvalidState,
			"withdrawal request is still pending review")
	}
	w.status = ReviewPending
	w.reviewerID = ""
	w.reviewedAt = time.Time{}
	return nil
}
