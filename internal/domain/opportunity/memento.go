package opportunity

import (
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Memento is the persistable state of an Opportunity.
type Memento struct {
	ID             string
	OwnerID        shared.UserID
	Title          string
	Description    string
	PreferredMajor shared.Major
	Level          InternshipLevel
	Window         shared.DateRange
	Slots          int
	ConfirmedSlots int
	Status         Status
	Visible        bool
}

// Memento exports the listing's state.
func (o *Opportunity) Memento() Memento {
	return Memento{
		ID:             o.id,
		OwnerID:        o.ownerID,
		Title:          o.title,
		Description:    o.description,
		PreferredMajor: o.preferredMajor,
		Level:          o.level,
		Window:         o.window,
		Slots:          o.slots,
		ConfirmedSlots: o.confirmed,
		Status:         o.status,
		Visible:        o.visible,
	}
}

// Restore rebuilds an Opportunity from a memento, re-checking every
// invariant so a corrupt snapshot is refused instead of loaded.
func Restore(m Memento) (*Opportunity, error) {
	o, err := New(m.ID, m.OwnerID, Draft{
		Title:          m.Title,
		Description:    m.Description,
		PreferredMajor: m.PreferredMajor,
		Level:          m.Level,
		Window:         m.Window,
		Slots:          m.Slots,
	})
	if err != nil {
		return nil, err
	}
	if !m.Status.IsValid() {
		return nil, shared.NewDomainError("opportunity", "Restore", shared.ErrValidation, "unknown status: "+string(m.Status))
	}
	if m.ConfirmedSlots < 0 || m.ConfirmedSlots > m.Slots {
		return nil, shared.NewDomainError("opportunity", "Restore", shared.ErrValidation, "confirmed slots out of range")
	}
	if m.Visible && m.Status != StatusApproved {
		return nil, shared.NewDomainError("opportunity", "Restore", shared.ErrValidation, "only an approved opportunity can be visible")
	}
	if m.Status == StatusFilled && (m.Visible || m.ConfirmedSlots != m.Slots) {
		return nil, shared.NewDomainError("opportunity", "Restore", shared.ErrValidation, "filled opportunity must be invisible with all slots confirmed")
	}
	o.confirmed = m.ConfirmedSlots
	o.status = m.Status
	o.visible = m.Visible
	return o, nil
}
