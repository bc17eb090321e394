// Package command contains the write side of the lifecycle engine. Every
// mutation of the opportunity and application collections passes through
// exactly one handler here: the handler verifies role and ownership,
// drives the entity state machines, requests persistence after the
// mutation succeeds, and publishes the resulting domain events. Failures
// surface as typed domain errors, never as panics.
package command

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/idgen"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/timeutil"
)

// MaxPendingApplications is the global per-student cap on active
// applications, across all opportunities.
const MaxPendingApplications = 3

// Checkpointer flushes the in-memory collections to durable storage after
// successful mutations. A flush failure is reported upward; the in-memory
// state stays authoritative for the rest of the session.
type Checkpointer interface {
	SaveUsers(ctx context.Context) error
	SaveOpportunities(ctx context.Context) error
	SaveApplications(ctx context.Context) error
	SaveWithdrawalRequests(ctx context.Context) error
}

// Deps carries the collaborators shared by every command handler. Guard is
// the process-wide lock over the opportunity and application collections:
// each handler holds it for its whole multi-step sequence, so concurrent
// accepts cannot both pass the capacity check and overcommit slots.
type Deps struct {
	Users         identity.Store
	Opportunities opportunity.Repository
	Applications  application.Repository
	Withdrawals   application.WithdrawalRepository

	Policy   opportunity.Eligibility
	Verifier identity.CredentialVerifier
	Clock    timeutil.Clock

	OpportunityIDs *idgen.Generator
	ApplicationIDs *idgen.Generator
	WithdrawalIDs  *idgen.Generator

	Checkpoint Checkpointer
	Bus        shared.EventBus
	Logger     *logger.Logger

	// StaffReviewedWithdrawals routes student withdrawals through the
	// request/review flow instead of executing them directly.
	StaffReviewedWithdrawals bool

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
	if d.Logger == nil {
		d.Logger = logger.Default()
	}
	if d.OpportunityIDs == nil {
		d.OpportunityIDs = idgen.New(idgen.PrefixOpportunity)
	}
	if d.ApplicationIDs == nil {
		d.ApplicationIDs = idgen.New(idgen.PrefixApplication)
	}
	if d.WithdrawalIDs == nil {
		d.WithdrawalIDs = idgen.New(idgen.PrefixWithdrawal)
	}
	return &d
}

// publish sends events best-effort: a subscriber failure is logged by the
// bus and never rolls back the mutation that produced the event.
func (d *Deps) publish(ctx context.Context, events ...shared.Event) {
	if d.Bus == nil {
		return
	}
	_ = d.Bus.Publish(ctx, events...)
}

// collection names one of the four persisted collections.
type collection int

const (
	colUsers collection = iota
	colOpportunities
	colApplications
	colWithdrawals
)

// persist flushes the named collections, joining failures so the caller
// sees every collection that missed its checkpoint.
func (d *Deps) persist(ctx context.Context, cols ...collection) error {
	if d.Checkpoint == nil {
		return nil
	}
	var errs []error
	for _, c := range cols {
		var err error
		switch c {
		case colUsers:
			err = d.Checkpoint.SaveUsers(ctx)
		case colOpportunities:
			err = d.Checkpoint.SaveOpportunities(ctx)
		case colApplications:
			err = d.Checkpoint.SaveApplications(ctx)
		case colWithdrawals:
			err = d.Checkpoint.SaveWithdrawalRequests(ctx)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		// The in-memory mutation stands; only the durable copy is stale.
		d.Logger.Error("checkpoint failed after mutation", logger.Err(err))
		return fmt.Errorf("engine: mutation committed in memory but durable save failed: %w", err)
	}
	return nil
}

// countPendingApplications counts a student's active applications.
func (d *Deps) countPendingApplications(ctx context.Context, studentID shared.UserID) (int, error) {
	apps, err := d.Applications.ListByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range apps {
		if a.IsActive() {
			n++
		}
	}
	return n, nil
}

// hasActiveApplication reports whether the student already has a PENDING
// application for the given opportunity.
func (d *Deps) hasActiveApplication(ctx context.Context, studentID shared.UserID, opportunityID string) (bool, error) {
	apps, err := d.Applications.ListByStudent(ctx, studentID)
	if err != nil {
		return false, err
	}
	for _, a := range apps {
		if a.IsActive() && a.OpportunityID() == opportunityID {
			return true, nil
		}
	}
	return false, nil
}
