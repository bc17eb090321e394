// Package policy contains the pluggable eligibility predicate deciding
// whether a student may apply to an opportunity. Policies are pure and
// evaluated fresh on every call; the engine receives one by injection at
// construction and never reaches for an ambient default.
package policy

import (
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
)

// DefaultPolicy is the standard eligibility rule: the student's major must
// match the listing's preferred major, and students in years 1-2 may only
// apply to BASIC-level listings. Years 3-4 may apply to any level.
type DefaultPolicy struct{}

// NewDefault returns the default eligibility policy.
func NewDefault() DefaultPolicy {
	return DefaultPolicy{}
}

// CanApply implements opportunity.Eligibility.
func (DefaultPolicy) CanApply(student *identity.Student, o *opportunity.Opportunity) bool {
	if student == nil || o == nil {
		return false
	}
	if student.Major() != o.PreferredMajor() {
		return false
	}
	if student.YearOfStudy() <= 2 {
		return o.Level() == opportunity.LevelBasic
	}
	return true
}

// Func adapts a plain function into an opportunity.Eligibility, handy for
// swapping in custom rules at process scope and for tests.
type Func func(student *identity.Student, o *opportunity.Opportunity) bool

// CanApply implements opportunity.Eligibility.
func (f Func) CanApply(student *identity.Student, o *opportunity.Opportunity) bool {
	return f(student, o)
}
