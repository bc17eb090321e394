// Package snapshot persists the entity collections as versioned JSON record
// files. The format is an explicit schema rather than an opaque object
// dump: every record type carries its fields by name, and every file
// carries the schema version it was written with.
package snapshot

import (
	"time"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// SchemaVersion is the current on-disk schema version.
const SchemaVersion = 1

// envelope wraps every snapshot file.
type envelope[T any] struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Records []T       `json:"records"`
}

// UserRecord is the versioned form of any identity. Role selects which of
// the optional field groups is meaningful.
type UserRecord struct {
	Role       string `json:"role"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	Credential string `json:"credential"`

	// Student fields
	YearOfStudy           int      `json:"year_of_study,omitempty"`
	Major                 string   `json:"major,omitempty"`
	ApplicationIDs        []string `json:"application_ids,omitempty"`
	AcceptedApplicationID string   `json:"accepted_application_id,omitempty"`

	// Representative fields
	Company       string `json:"company,omitempty"`
	Position      string `json:"position,omitempty"`
	AccountStatus string `json:"account_status,omitempty"`

	// Shared by representative and staff
	Department string `json:"department,omitempty"`
}

// OpportunityRecord is the versioned form of an opportunity.
type OpportunityRecord struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	PreferredMajor string    `json:"preferred_major"`
	Level          string    `json:"level"`
	OpenDate       time.Time `json:"open_date"`
	CloseDate      time.Time `json:"close_date"`
	Slots          int       `json:"slots"`
	ConfirmedSlots int       `json:"confirmed_slots"`
	Status         string    `json:"status"`
	Visible        bool      `json:"visible"`
}

// ApplicationRecord is the versioned form of an application.
type ApplicationRecord struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"student_id"`
	OpportunityID string     `json:"opportunity_id"`
	Status        string     `json:"status"`
	Accepted      bool       `json:"accepted"`
	AppliedAt     time.Time  `json:"applied_at"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
}

// WithdrawalRecord is the versioned form of a withdrawal request.
type WithdrawalRecord struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	StudentID     string     `json:"student_id"`
	RequestedAt   time.Time  `json:"requested_at"`
	Status        string     `json:"status"`
	ReviewerID    string     `json:"reviewer_id,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

// ═══════════════════════════════════════════════════════════════════════════
// Domain <-> record mapping
// ═══════════════════════════════════════════════════════════════════════════

func userToRecord(u identity.User) UserRecord {
	switch v := u.(type) {
	case *identity.Student:
		m := v.Memento()
		return UserRecord{
			Role:                  string(identity.RoleStudent),
			ID:                    m.ID.String(),
			Name:                  m.Name,
			Credential:            m.Credential,
			YearOfStudy:           m.YearOfStudy,
			Major:                 m.Major.String(),
			ApplicationIDs:        m.ApplicationIDs,
			AcceptedApplicationID: m.AcceptedApplicationID,
		}
	case *identity.CompanyRepresentative:
		m := v.Memento()
		return UserRecord{
			Role:          string(identity.RoleRepresentative),
			ID:            m.ID.String(),
			Name:          m.Name,
			Credential:    m.Credential,
			Company:       m.Company,
			Department:    m.Department,
			Position:      m.Position,
			AccountStatus: string(m.AccountStatus),
		}
	case *identity.CareerCenterStaff:
		m := v.Memento()
		return UserRecord{
			Role:       string(identity.RoleStaff),
			ID:         m.ID.String(),
			Name:       m.Name,
			Credential: m.Credential,
			Department: m.Department,
		}
	default:
		// Unreachable with the three concrete roles.
		return UserRecord{ID: u.ID().String(), Name: u.Name(), Role: string(u.Role())}
	}
}

func recordToUser(r UserRecord) (identity.User, error) {
	id, err := shared.NewUserID(r.ID)
	if err != nil {
		return nil, err
	}
	switch identity.Role(r.Role) {
	case identity.RoleStudent:
		major, err := shared.ParseMajor(r.Major)
		if err != nil {
			return nil, err
		}
		return identity.RestoreStudent(identity.StudentMemento{
			ID:                    id,
			Name:                  r.Name,
			Credential:            r.Credential,
			YearOfStudy:           r.YearOfStudy,
			Major:                 major,
			ApplicationIDs:        r.ApplicationIDs,
			AcceptedApplicationID: r.AcceptedApplicationID,
		})
	case identity.RoleRepresentative:
		status, err := identity.ParseAccountStatus(r.AccountStatus)
		if err != nil {
			return nil, err
		}
		return identity.RestoreRepresentative(identity.RepresentativeMemento{
			ID:            id,
			Name:          r.Name,
			Credential:    r.Credential,
			Company:       r.Company,
			Department:    r.Department,
			Position:      r.Position,
			AccountStatus: status,
		})
	case identity.RoleStaff:
		return identity.RestoreStaff(identity.StaffMemento{
			ID:         id,
			Name:       r.Name,
			Credential: r.Credential,
			Department: r.Department,
		})
	default:
		return nil, shared.NewDomainError("snapshot", "recordToUser", shared.ErrValidation,
			"unknown role in user record: "+r.Role)
	}
}

func opportunityToRecord(o *opportunity.Opportunity) OpportunityRecord {
	m := o.Memento()
	return OpportunityRecord{
		ID:             m.ID,
		OwnerID:        m.OwnerID.String(),
		Title:          m.Title,
		Description:    m.Description,
		PreferredMajor: m.PreferredMajor.String(),
		Level:          m.Level.String(),
		OpenDate:       m.Window.Open,
		CloseDate:      m.Window.Close,
		Slots:          m.Slots,
		ConfirmedSlots: m.ConfirmedSlots,
		Status:         m.Status.String(),
		Visible:        m.Visible,
	}
}

func recordToOpportunity(r OpportunityRecord) (*opportunity.Opportunity, error) {
	ownerID, err := shared.NewUserID(r.OwnerID)
	if err != nil {
		return nil, err
	}
	major, err := shared.ParseMajor(r.PreferredMajor)
	if err != nil {
		return nil, err
	}
	level, err := opportunity.ParseLevel(r.Level)
	if err != nil {
		return nil, err
	}
	window, err := shared.NewDateRange(r.OpenDate, r.CloseDate)
	if err != nil {
		return nil, err
	}
	return opportunity.Restore(opportunity.Memento{
		ID:             r.ID,
		OwnerID:        ownerID,
		Title:          r.Title,
		Description:    r.Description,
		PreferredMajor: major,
		Level:          level,
		Window:         window,
		Slots:          r.Slots,
		ConfirmedSlots: r.ConfirmedSlots,
		Status:         opportunity.Status(r.Status),
		Visible:        r.Visible,
	})
}

func applicationToRecord(a *application.Application) ApplicationRecord {
	m := a.Memento()
	rec := ApplicationRecord{
		ID:            m.ID,
		StudentID:     m.StudentID.String(),
		OpportunityID: m.OpportunityID,
		Status:        m.Status.String(),
		Accepted:      m.Accepted,
		AppliedAt:     m.AppliedAt,
	}
	if !m.DecidedAt.IsZero() {
		t := m.DecidedAt
		rec.DecidedAt = &t
	}
	return rec
}

func recordToApplication(r ApplicationRecord) (*application.Application, error) {
	studentID, err := shared.NewUserID(r.StudentID)
	if err != nil {
		return nil, err
	}
	m := application.Memento{
		ID:            r.ID,
		StudentID:     studentID,
		OpportunityID: r.OpportunityID,
		Status:        application.Status(r.Status),
		Accepted:      r.Accepted,
		AppliedAt:     r.AppliedAt,
	}
	if r.DecidedAt != nil {
		m.DecidedAt = *r.DecidedAt
	}
	return application.Restore(m)
}

func withdrawalToRecord(w *application.WithdrawalRequest) WithdrawalRecord {
	m := w.Memento()
	rec := WithdrawalRecord{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		StudentID:     m.StudentID.String(),
		RequestedAt:   m.RequestedAt,
		Status:        m.Status.String(),
		ReviewerID:    m.ReviewerID.String(),
	}
	if !m.ReviewedAt.IsZero() {
		t := m.ReviewedAt
		rec.ReviewedAt = &t
	}
	return rec
}

func recordToWithdrawal(r WithdrawalRecord) (*application.WithdrawalRequest, error) {
	studentID, err := shared.NewUserID(r.StudentID)
	if err != nil {
		return nil, err
	}
	m := application.WithdrawalMemento{
		ID:            r.ID,
		ApplicationID: r.ApplicationID,
		StudentID:     studentID,
		RequestedAt:   r.RequestedAt,
		Status:        application.ReviewStatus(r.Status),
		ReviewerID:    shared.UserID(r.ReviewerID),
	}
	if r.ReviewedAt != nil {
		m.ReviewedAt = *r.ReviewedAt
	}
	return application.RestoreWithdrawal(m)
}
