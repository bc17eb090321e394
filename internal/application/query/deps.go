// Package query holds the read-side handlers. They share the command
// engine's guard in read mode, so listings never observe a half-applied
// multi-step mutation.
package query

import (
	"sync"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/timeutil"
)

// Deps carries the read-side collaborators. Guard must be the same mutex
// the command engine holds for writes.
type Deps struct {
	Users         identity.Store
	Opportunities opportunity.Repository
	Applications  application.Repository
	Withdrawals   application.WithdrawalRepository

	Policy opportunity.Eligibility
	Clock  timeutil.Clock

	Guard *sync.RWMutex
}

// NewDeps fills in the optional collaborators.
func NewDeps(d Deps) *Deps {
	if d.Guard == nil {
		d.Guard = &sync.RWMutex{}
	}
	if d.Clock == nil {
		d.Clock = timeutil.SystemClock{}
	}
	return &d
}
