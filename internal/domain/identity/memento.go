package identity

import (
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Mementos carry entity state across the persistence boundary without
// exposing the mutable internals. Restore functions re-validate, so a
// tampered snapshot cannot smuggle an invalid entity into a run.

// StudentMemento is the persistable state of a Student.
type StudentMemento struct {
	ID                    shared.UserID
	Name                  string
	Credential            string
	YearOfStudy           int
	Major                 shared.Major
	ApplicationIDs        []string
	AcceptedApplicationID string
}

// Memento exports the student's state.
func (s *Student) Memento() StudentMemento {
	return StudentMemento{
		ID:                    s.id,
		Name:                  s.name,
		Credential:            s.credential,
		YearOfStudy:           s.yearOfStudy,
		Major:                 s.major,
		ApplicationIDs:        s.ApplicationIDs(),
		AcceptedApplicationID: s.acceptedAppID,
	}
}

// RestoreStudent rebuilds a Student from a memento.
func RestoreStudent(m StudentMemento) (*Student, error) {
	st, err := NewStudent(m.ID, m.Name, m.Credential, m.YearOfStudy, m.Major)
	if err != nil {
		return nil, err
	}
	st.applications = append([]string(nil), m.ApplicationIDs...)
	if m.AcceptedApplicationID != "" {
		if err := st.MarkAccepted(m.AcceptedApplicationID); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// RepresentativeMemento is the persistable state of a CompanyRepresentative.
type RepresentativeMemento struct {
	ID            shared.UserID
	Name          string
	Credential    string
	Company       string
	Department    string
	Position      string
	AccountStatus AccountStatus
}

// Memento exports the representative's state.
func (r *CompanyRepresentative) Memento() RepresentativeMemento {
	return RepresentativeMemento{
		ID:            r.id,
		Name:          r.name,
		Credential:    r.credential,
		Company:       r.company,
		Department:    r.department,
		Position:      r.position,
		AccountStatus: r.status,
	}
}

// RestoreRepresentative rebuilds a CompanyRepresentative from a memento.
func RestoreRepresentative(m RepresentativeMemento) (*CompanyRepresentative, error) {
	rep, err := NewRepresentative(m.ID, m.Name, m.Credential, m.Company, m.Department, m.Position)
	if err != nil {
		return nil, err
	}
	if !m.AccountStatus.IsValid() {
		return nil, shared.NewDomainError("identity", "RestoreRepresentative", shared.ErrValidation,
			"unknown account status: "+string(m.AccountStatus))
	}
	rep.restoreAccountStatus(m.AccountStatus)
	return rep, nil
}

// StaffMemento is the persistable state of a CareerCenterStaff.
type StaffMemento struct {
	ID         shared.UserID
	Name       string
	Credential string
	Department string
}

// Memento exports the staff member's state.
func (s *CareerCenterStaff) Memento() StaffMemento {
	return StaffMemento{
		ID:         s.id,
		Name:       s.name,
		Credential: s.credential,
		Department: s.department,
	}
}

// RestoreStaff rebuilds a CareerCenterStaff from a memento.
func RestoreStaff(m StaffMemento) (*CareerCenterStaff, error) {
	return NewStaff(m.ID, m.Name, m.Credential, m.Department)
}
