// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"strings"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// UserID Value Object
// ═══════════════════════════════════════════════════════════════════════════

// UserID represents a user identifier in canonical form. Identity equality is
// by canonical identifier only: surrounding whitespace and letter case are
// not significant.
type UserID string

// NewUserID canonicalizes a raw identifier: trims whitespace and uppercases.
func NewUserID(raw string) (UserID, error) {
	id := UserID(strings.ToUpper(strings.TrimSpace(raw)))
	if id == "" {
		return "", NewDomainError("shared", "NewUserID", ErrValidation, "user id cannot be empty")
	}
	return id, nil
}

// MustUserID is NewUserID for statically known identifiers; it panics on
// empty input and is intended for seed data and tests.
func MustUserID(raw string) UserID {
	id, err := NewUserID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// IsEmpty checks if the ID is empty.
func (u UserID) IsEmpty() bool {
	return u == ""
}

// String returns the canonical string representation.
func (u UserID) String() string {
	return string(u)
}

// Equals compares two identifiers in canonical form.
func (u UserID) Equals(other UserID) bool {
	return u == other
}

// ═══════════════════════════════════════════════════════════════════════════
// Major Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Major represents a declared field of study.
type Major string

const (
	MajorComputerScience Major = "CS"
	MajorElectrical      Major = "EEE"
	MajorMechanical      Major = "MECH"
	MajorBusiness        Major = "BIZ"
	MajorDataScience     Major = "DS"
)

// AllMajors lists every recognised major.
var AllMajors = []Major{
	MajorComputerScience,
	MajorElectrical,
	MajorMechanical,
	MajorBusiness,
	MajorDataScience,
}

// IsValid checks if the major belongs to the enumerated set.
func (m Major) IsValid() bool {
	for _, known := range AllMajors {
		if m == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (m Major) String() string {
	return string(m)
}

// ParseMajor parses a raw string into a Major.
func ParseMajor(raw string) (Major, error) {
	m := Major(strings.ToUpper(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", NewDomainError("shared", "ParseMajor", ErrValidation, "unknown major: "+raw)
	}
	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// DateRange Value Object
// ═══════════════════════════════════════════════════════════════════════════

// DateRange represents an inclusive open/close window at day granularity.
type DateRange struct {
	Open  time.Time
	Close time.Time
}

// NewDateRange creates a DateRange with validation.
func NewDateRange(open, close time.Time) (DateRange, error) {
	dr := DateRange{Open: open, Close: close}
	if !dr.IsValid() {
		return DateRange{}, NewDomainError("shared", "NewDateRange", ErrValidation, "open date must not be after close date")
	}
	return dr, nil
}

// IsValid checks that both dates are set and ordered.
func (d DateRange) IsValid() bool {
	return !d.Open.IsZero() && !d.Close.IsZero() && !d.Open.After(d.Close)
}

// Contains reports whether the given instant falls inside the window,
// compared at day granularity so that the close date itself still counts.
func (d DateRange) Contains(t time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(truncateToDay(d.Open)) && !day.After(truncateToDay(d.Close))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
