// Package opportunity contains the internship-listing state machine:
// PENDING -> {APPROVED, REJECTED}; APPROVED -> FILLED when capacity is
// exhausted; any owner edit forces PENDING and revokes visibility.
package opportunity

import (
	"strings"
	"time"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// Status and InternshipLevel
// ═══════════════════════════════════════════════════════════════════════════

// Status enumerates the approval/visibility lifecycle of a listing.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusFilled   Status = "FILLED"
)

// IsValid checks if the status belongs to the enumerated set.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFilled:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string { return string(s) }

// InternshipLevel enumerates the difficulty tier of a listing.
type InternshipLevel string

const (
	LevelBasic        InternshipLevel = "BASIC"
	LevelIntermediate InternshipLevel = "INTERMEDIATE"
	LevelAdvanced     InternshipLevel = "ADVANCED"
)

// IsValid checks if the level belongs to the enumerated set.
func (l InternshipLevel) IsValid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// String returns the string representation.
func (l InternshipLevel) String() string { return string(l) }

// ParseLevel parses a raw string into an InternshipLevel.
func ParseLevel(raw string) (InternshipLevel, error) {
	l := InternshipLevel(strings.ToUpper(strings.TrimSpace(raw)))
	if !l.IsValid() {
		return "", shared.NewDomainError("opportunity", "ParseLevel", shared.ErrValidation, "unknown internship level: "+raw)
	}
	return l, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Draft
// ═══════════════════════════════════════════════════════════════════════════

// Draft carries the mutable fields of a listing, used both at creation and
// for owner edits.
type Draft struct {
	Title          string
	Description    string
	PreferredMajor shared.Major
	Level          InternshipLevel
	Window         shared.DateRange
	Slots          int
}

// Validate checks the draft fields.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return shared.NewDomainError("opportunity", "Validate", shared.ErrValidation, "title is required")
	}
	if !d.PreferredMajor.IsValid() {
		return shared.NewDomainError("opportunity", "Validate", shared.ErrValidation, "unknown preferred major: "+d.PreferredMajor.String())
	}
	if !d.Level.IsValid() {
		return shared.NewDomainError("opportunity", "Validate", shared.ErrValidation, "unknown internship level: "+d.Level.String())
	}
	if !d.Window.IsValid() {
		return shared.NewDomainError("opportunity", "Validate", shared.ErrValidation, "open date must not be after close date")
	}
	if d.Slots <= 0 {
		return shared.NewDomainError("opportunity", "Validate", shared.ErrValidation, "total slots must be positive")
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Opportunity
// ═══════════════════════════════════════════════════════════════════════════

// Eligibility gates who may apply to a listing. It is a pure predicate,
// consulted fresh on every call and injected by the engine, never global.
type Eligibility interface {
	CanApply(student *identity.Student, o *Opportunity) bool
}

// Opportunity is a posted internship listing owned by one representative.
// Invariants held after every method:
//
//	0 <= confirmed <= slots
//	visible == true  => status == APPROVED
//	status == FILLED => visible == false && confirmed == slots
type Opportunity struct {
	id      string
	ownerID shared.UserID

	title          string
	description    string
	preferredMajor shared.Major
	level          InternshipLevel
	window         shared.DateRange
	slots          int

	confirmed int
	status    Status
	visible   bool
}

// New creates a listing in PENDING, invisible, with zero confirmed slots.
func New(id string, ownerID shared.UserID, draft Draft) (*Opportunity, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewDomainError("opportunity", "New", shared.ErrValidation, "opportunity id is required")
	}
	if ownerID.IsEmpty() {
		return nil, shared.NewDomainError("opportunity", "New", shared.ErrValidation, "owning representative is required")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return &Opportunity{
		id:             id,
		ownerID:        ownerID,
		title:          strings.TrimSpace(draft.Title),
		description:    strings.TrimSpace(draft.Description),
		preferredMajor: draft.PreferredMajor,
		level:          draft.Level,
		window:         draft.Window,
		slots:          draft.Slots,
		status:         StatusPending,
		visible:        false,
	}, nil
}

// ID returns the immutable identifier.
func (o *Opportunity) ID() string { return o.id }

// OwnerID returns the owning representative's id.
func (o *Opportunity) OwnerID() shared.UserID { return o.ownerID }

// Title returns the listing title.
func (o *Opportunity) Title() string { return o.title }

// Description returns the listing description.
func (o *Opportunity) Description() string { return o.description }

// PreferredMajor returns the preferred major.
func (o *Opportunity) PreferredMajor() shared.Major { return o.preferredMajor }

// Level returns the internship level.
func (o *Opportunity) Level() InternshipLevel { return o.level }

// Window returns the open/close window.
func (o *Opportunity) Window() shared.DateRange { return o.window }

// Slots returns the total slot count.
func (o *Opportunity) Slots() int { return o.slots }

// ConfirmedSlots returns the count of accepted offers occupying capacity.
func (o *Opportunity) ConfirmedSlots() int { return o.confirmed }

// Vacancies returns the remaining capacity.
func (o *Opportunity) Vacancies() int { return o.slots - o.confirmed }

// Status returns the lifecycle status.
func (o *Opportunity) Status() Status { return o.status }

// Visible reports whether the listing is discoverable by students.
func (o *Opportunity) Visible() bool { return o.visible }

// IsOwnedBy reports whether the given representative owns this listing.
func (o *Opportunity) IsOwnedBy(repID shared.UserID) bool {
	return o.ownerID.Equals(repID)
}

// IsDeletable reports whether the owner may remove the listing. Deletion is
// permitted only while PENDING or REJECTED.
func (o *Opportunity) IsDeletable() bool {
	return o.status == StatusPending || o.status == StatusRejected
}

// ApplyEdit replaces the mutable fields. Any edit, from any state, forces
// the listing back to PENDING and revokes visibility: edits always require
// re-approval. Confirmed slots survive the edit, so a slot count below the
// confirmed count is refused rather than silently capped.
func (o *Opportunity) ApplyEdit(draft Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if draft.Slots < o.confirmed {
		return shared.NewDomainError("opportunity", "ApplyEdit", shared.ErrCapacity,
			"total slots cannot drop below confirmed slots")
	}
	o.title = strings.TrimSpace(draft.Title)
	o.description = strings.TrimSpace(draft.Description)
	o.preferredMajor = draft.PreferredMajor
	o.level = draft.Level
	o.window = draft.Window
	o.slots = draft.Slots
	o.status = StatusPending
	o.visible = false
	return nil
}

// Approve moves a PENDING listing to APPROVED and publishes it. Deciding a
// non-PENDING listing is an invalid-state error.
func (o *Opportunity) Approve() error {
	if o.status != StatusPending {
		return shared.NewDomainError("opportunity", "Approve", shared.ErrInvalidState,
			"only a pending opportunity can be approved, current status is "+string(o.status))
	}
	o.status = StatusApproved
	o.visible = true
	o.RecomputeFilled()
	return nil
}

// Reject moves a PENDING listing to REJECTED and hides it.
func (o *Opportunity) Reject() error {
	if o.status != StatusPending {
		return shared.NewDomainError("opportunity", "Reject", shared.ErrInvalidState,
			"only a pending opportunity can be rejected, current status is "+string(o.status))
	}
	o.status = StatusRejected
	o.visible = false
	return nil
}

// ConfirmSlot occupies one slot for an accepted offer. Callers must run
// RecomputeFilled afterwards; the engine does both under one lock.
func (o *Opportunity) ConfirmSlot() error {
	if o.confirmed >= o.slots {
		return shared.NewDomainError("opportunity", "ConfirmSlot", shared.ErrCapacity,
			"all slots are already confirmed")
	}
	o.confirmed++
	return nil
}

// ReleaseSlot frees one confirmed slot after an accepted application is
// withdrawn.
func (o *Opportunity) ReleaseSlot() error {
	if o.confirmed <= 0 {
		return shared.NewDomainError("opportunity", "ReleaseSlot", shared.ErrInvalidState,
			"no confirmed slots to release")
	}
	o.confirmed--
	return nil
}

// RecomputeFilled recalculates the FILLED state from the slot counters.
// When capacity is exhausted the listing becomes FILLED and invisible; when
// capacity is restored a FILLED listing reverts to APPROVED and visible.
func (o *Opportunity) RecomputeFilled() {
	switch {
	case o.confirmed >= o.slots && o.status == StatusApproved:
		o.status = StatusFilled
		o.visible = false
	case o.confirmed < o.slots && o.status == StatusFilled:
		o.status = StatusApproved
		o.visible = true
	}
}

// IsOpenFor reports whether the given student may discover and apply to the
// listing today: visible, approved, inside the window, with vacancy, and
// eligible under the injected policy. Pure query, no mutation.
func (o *Opportunity) IsOpenFor(student *identity.Student, policy Eligibility, today time.Time) bool {
	if student == nil || policy == nil {
		return false
	}
	if !o.visible || o.status != StatusApproved {
		return false
	}
	if !o.window.Contains(today) {
		return false
	}
	if o.Vacancies() <= 0 {
		return false
	}
	return policy.CanApply(student, o)
}
