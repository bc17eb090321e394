// Package identity contains the user model of the internship management
// system: students, company representatives and career center staff. The
// engine branches on the explicit Role tag, never on runtime type identity.
package identity

import (
	"strings"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// Role and AccountStatus
// ═══════════════════════════════════════════════════════════════════════════

// Role enumerates the three user capabilities of the closed workforce.
type Role string

const (
	RoleStudent        Role = "STUDENT"
	RoleRepresentative Role = "COMPANY_REPRESENTATIVE"
	RoleStaff          Role = "CAREER_CENTER_STAFF"
)

// IsValid checks if the role belongs to the enumerated set.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleRepresentative, RoleStaff:
		return true
	}
	return false
}

// String returns the string representation.
func (r Role) String() string { return string(r) }

// AccountStatus enumerates a company representative's account lifecycle.
// Only APPROVED representatives may authenticate; the gate lives at the
// login boundary, not inside the opportunity/application state machines.
type AccountStatus string

const (
	AccountPending  AccountStatus = "PENDING"
	AccountApproved AccountStatus = "APPROVED"
	AccountRejected AccountStatus = "REJECTED"
)

// IsValid checks if the status belongs to the enumerated set.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountPending, AccountApproved, AccountRejected:
		return true
	}
	return false
}

// ParseAccountStatus parses a raw string into an AccountStatus.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	s := AccountStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", shared.NewDomainError("identity", "ParseAccountStatus", shared.ErrValidation, "unknown account status: "+raw)
	}
	return s, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Identity base
// ═══════════════════════════════════════════════════════════════════════════

// User is the capability-neutral view of any identity in the system.
type User interface {
	ID() shared.UserID
	Name() string
	Role() Role

	// Credential returns the stored credential in whatever form the
	// configured verifier manages (plain or hashed). Only verifiers read it.
	Credential() string

	// SetCredential replaces the stored credential. Only verifiers and the
	// loader call it.
	SetCredential(credential string)

	// Rename updates the display name.
	Rename(name string) error
}

// Identity is the embeddable base shared by the three concrete roles.
// Identities are created at load time, mutated only for name/credential,
// and never destroyed during a run.
type Identity struct {
	id         shared.UserID
	name       string
	credential string
}

// NewIdentity creates the base identity with a canonical id.
func NewIdentity(id shared.UserID, name, credential string) (Identity, error) {
	if id.IsEmpty() {
		return Identity{}, shared.NewDomainError("identity", "New", shared.ErrValidation, "user id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Identity{}, shared.NewDomainError("identity", "New", shared.ErrValidation, "display name is required")
	}
	return Identity{id: id, name: name, credential: credential}, nil
}

// ID returns the canonical identifier.
func (i *Identity) ID() shared.UserID { return i.id }

// Name returns the display name.
func (i *Identity) Name() string { return i.name }

// Credential returns the stored credential.
func (i *Identity) Credential() string { return i.credential }

// SetCredential replaces the stored credential.
func (i *Identity) SetCredential(credential string) { i.credential = credential }

// Rename updates the display name.
func (i *Identity) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("identity", "Rename", shared.ErrValidation, "display name cannot be empty")
	}
	i.name = name
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Student
// ═══════════════════════════════════════════════════════════════════════════

// Student is an identity that owns applications. The application ids held
// here are non-owning back references for display; the engine's collection
// stays authoritative.
type Student struct {
	Identity

	yearOfStudy   int
	major         shared.Major
	applications  []string
	acceptedAppID string
}

// NewStudent creates a student with validation.
func NewStudent(id shared.UserID, name, credential string, yearOfStudy int, major shared.Major) (*Student, error) {
	base, err := NewIdentity(id, name, credential)
	if err != nil {
		return nil, err
	}
	if yearOfStudy < 1 || yearOfStudy > 4 {
		return nil, shared.NewDomainError("identity", "NewStudent", shared.ErrValidation, "year of study must be between 1 and 4")
	}
	if !major.IsValid() {
		return nil, shared.NewDomainError("identity", "NewStudent", shared.ErrValidation, "unknown major: "+major.String())
	}
	return &Student{Identity: base, yearOfStudy: yearOfStudy, major: major}, nil
}

// Role implements User.
func (s *Student) Role() Role { return RoleStudent }

// YearOfStudy returns the year of study (1..4).
func (s *Student) YearOfStudy() int { return s.yearOfStudy }

// Major returns the declared major.
func (s *Student) Major() shared.Major { return s.major }

// ApplicationIDs returns the ordered ids of the student's applications.
func (s *Student) ApplicationIDs() []string {
	out := make([]string, len(s.applications))
	copy(out, s.applications)
	return out
}

// RecordApplication appends an application id to the student's collection.
func (s *Student) RecordApplication(applicationID string) {
	for _, id := range s.applications {
		if id == applicationID {
			return
		}
	}
	s.applications = append(s.applications, applicationID)
}

// AcceptedApplicationID returns the id of the accepted application, or ""
// when the student has not accepted any offer.
func (s *Student) AcceptedApplicationID() string { return s.acceptedAppID }

// HasAcceptedOffer reports whether the student already occupies a slot.
func (s *Student) HasAcceptedOffer() bool { return s.acceptedAppID != "" }

// MarkAccepted records the accepted application. The application must be a
// member of the student's own collection, and at most one acceptance may be
// held at a time.
func (s *Student) MarkAccepted(applicationID string) error {
	if s.acceptedAppID != "" && s.acceptedAppID != applicationID {
		return shared.NewDomainError("identity", "MarkAccepted", shared.ErrConflict, "student already has an accepted application")
	}
	owned := false
	for _, id := range s.applications {
		if id == applicationID {
			owned = true
			break
		}
	}
	if !owned {
		return shared.NewDomainError("identity", "MarkAccepted", shared.ErrInvalidState, "application does not belong to this student")
	}
	s.acceptedAppID = applicationID
	return nil
}

// ClearAccepted drops the accepted reference when the given application is
// withdrawn. A different accepted application is left untouched.
func (s *Student) ClearAccepted(applicationID string) {
	if s.acceptedAppID == applicationID {
		s.acceptedAppID = ""
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// CompanyRepresentative
// ═══════════════════════════════════════════════════════════════════════════

// CompanyRepresentative is an identity that posts opportunities and decides
// on applications to them.
type CompanyRepresentative struct {
	Identity

	company    string
	department string
	position   string
	status     AccountStatus
}

// NewRepresentative creates a representative with a PENDING account.
func NewRepresentative(id shared.UserID, name, credential, company, department, position string) (*CompanyRepresentative, error) {
	base, err := NewIdentity(id, name, credential)
	if err != nil {
		return nil, err
	}
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, shared.NewDomainError("identity", "NewRepresentative", shared.ErrValidation, "company name is required")
	}
	return &CompanyRepresentative{
		Identity:   base,
		company:    company,
		department: strings.TrimSpace(department),
		position:   strings.TrimSpace(position),
		status:     AccountPending,
	}, nil
}

// Role implements User.
func (r *CompanyRepresentative) Role() Role { return RoleRepresentative }

// Company returns the company name.
func (r *CompanyRepresentative) Company() string { return r.company }

// Department returns the department.
func (r *CompanyRepresentative) Department() string { return r.department }

// Position returns the position.
func (r *CompanyRepresentative) Position() string { return r.position }

// AccountStatus returns the account review status.
func (r *CompanyRepresentative) AccountStatus() AccountStatus { return r.status }

// ReviewAccount moves a PENDING account to APPROVED or REJECTED. The review
// is one-shot: re-reviewing a decided account is rejected.
func (r *CompanyRepresentative) ReviewAccount(approve bool) error {
	if r.status != AccountPending {
		return shared.NewDomainError("identity", "ReviewAccount", shared.ErrInvalidState,
			"representative account is already "+string(r.status))
	}
	if approve {
		r.status = AccountApproved
	} else {
		r.status = AccountRejected
	}
	return nil
}

// restoreAccountStatus is used by RestoreRepresentative only.
func (r *CompanyRepresentative) restoreAccountStatus(status AccountStatus) {
	r.status = status
}

// ═══════════════════════════════════════════════════════════════════════════
// CareerCenterStaff
// ═══════════════════════════════════════════════════════════════════════════

// CareerCenterStaff is an identity that reviews opportunities, representative
// accounts and withdrawal requests.
type CareerCenterStaff struct {
	Identity

	department string
}

// NewStaff creates a staff member.
func NewStaff(id shared.UserID, name, credential, department string) (*CareerCenterStaff, error) {
	base, err := NewIdentity(id, name, credential)
	if err != nil {
		return nil, err
	}
	return &CareerCenterStaff{Identity: base, department: strings.TrimSpace(department)}, nil
}

// Role implements User.
func (s *CareerCenterStaff) Role() Role { return RoleStaff }

// Department returns the department.
func (s *CareerCenterStaff) Department() string { return s.department }
