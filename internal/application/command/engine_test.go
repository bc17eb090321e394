package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/policy"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/messaging"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/persistence/memory"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/service"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/timeutil"
)

// fixture wires an engine over an in-memory store with a fixed clock and a
// standard cast: one staff member, two representatives, three students.
type fixture struct {
	t      *testing.T
	ctx    context.Context
	engine *Engine
	store  *memory.Store
	clock  *timeutil.FixedClock

	staff shared.UserID
	repA  shared.UserID
	repB  shared.UserID
	stu1  shared.UserID
	stu2  shared.UserID
	stu3  shared.UserID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: memory.NewStore(),
		clock: timeutil.NewFixed(timeutil.Date(2026, 6, 15)),
		staff: shared.MustUserID("STF1"),
		repA:  shared.MustUserID("REPA"),
		repB:  shared.MustUserID("REPB"),
		stu1:  shared.MustUserID("STU1"),
		stu2:  shared.MustUserID("STU2"),
		stu3:  shared.MustUserID("STU3"),
	}

	quiet := logger.New(logger.Options{Level: logger.LevelError})
	deps := NewDeps(Deps{
		Users:         f.store,
		Opportunities: f.store.Opportunities(),
		Applications:  f.store.Applications(),
		Withdrawals:   f.store.Withdrawals(),
		Policy:        policy.NewDefault(),
		Verifier:      service.NewPlainVerifier(),
		Clock:         f.clock,
		Bus:           messaging.NewInMemoryEventBus(quiet),
		Logger:        quiet,
	})
	f.engine = NewEngine(deps)

	staff, err := identity.NewStaff(f.staff, "Staff One", "pw", "Careers")
	require.NoError(t, err)
	require.NoError(t, f.store.AddUser(staff))

	for _, id := range []shared.UserID{f.repA, f.repB} {
		rep, err := identity.NewRepresentative(id, "Rep "+id.String(), "pw", "Acme", "HR", "Manager")
		require.NoError(t, err)
		require.NoError(t, rep.ReviewAccount(true))
		require.NoError(t, f.store.AddUser(rep))
	}
	for i, id := range []shared.UserID{f.stu1, f.stu2, f.stu3} {
		year := 3
		if i == 2 {
			year = 1
		}
		stu, err := identity.NewStudent(id, "Student "+id.String(), "pw", year, shared.MajorComputerScience)
		require.NoError(t, err)
		require.NoError(t, f.store.AddUser(stu))
	}
	return f
}

func (f *fixture) draft(slots int, level opportunity.InternshipLevel) opportunity.Draft {
	window, err := shared.NewDateRange(timeutil.Date(2026, 1, 1), timeutil.Date(2026, 12, 31))
	require.NoError(f.t, err)
	return opportunity.Draft{
		Title:          "Backend Intern",
		Description:    "Go services",
		PreferredMajor: shared.MajorComputerScience,
		Level:          level,
		Window:         window,
		Slots:          slots,
	}
}

// post creates a listing owned by repA.
func (f *fixture) post(slots int, level opportunity.InternshipLevel) *opportunity.Opportunity {
	res, err := f.engine.PostOpportunity.Handle(f.ctx, PostOpportunityCommand{
		ActorID: f.repA,
		Draft:   f.draft(slots, level),
	})
	require.NoError(f.t, err)
	return res.Opportunity
}

// postApproved creates a listing and has staff approve it.
func (f *fixture) postApproved(slots int, level opportunity.InternshipLevel) *opportunity.Opportunity {
	o := f.post(slots, level)
	require.NoError(f.t, f.engine.ReviewOpportunity.Handle(f.ctx, ReviewOpportunityCommand{
		ActorID:       f.staff,
		OpportunityID: o.ID(),
		Approve:       true,
	}))
	return o
}

func (f *fixture) apply(student shared.UserID, oppID string) *application.Application {
	res, err := f.engine.SubmitApplication.Handle(f.ctx, SubmitApplicationCommand{
		ActorID:       student,
		OpportunityID: oppID,
	})
	require.NoError(f.t, err)
	return res.Application
}

func (f *fixture) approveApp(appID string) {
	require.NoError(f.t, f.engine.DecideApplication.Handle(f.ctx, DecideApplicationCommand{
		ActorID:       f.repA,
		ApplicationID: appID,
		Approve:       true,
	}))
}

// ═══════════════════════════════════════════════════════════════════════════
// Opportunity lifecycle
// ═══════════════════════════════════════════════════════════════════════════

func TestPostOpportunity_StartsPendingWithGeneratedID(t *testing.T) {
	f := newFixture(t)
	o := f.post(2, opportunity.LevelBasic)

	assert.Regexp(t, `^ITP-[0-9A-Z]{6}$`, o.ID())
	assert.Equal(t, opportunity.StatusPending, o.Status())
	assert.False(t, o.Visible())
}

func TestPostOpportunity_RefusedForNonRepresentative(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.PostOpportunity.Handle(f.ctx, PostOpportunityCommand{
		ActorID: f.stu1,
		Draft:   f.draft(1, opportunity.LevelBasic),
	})
	assert.True(t, shared.IsForbidden(err))
}

func TestReviewOpportunity_StrictPendingGuard(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)

	err := f.engine.ReviewOpportunity.Handle(f.ctx, ReviewOpportunityCommand{
		ActorID:       f.staff,
		OpportunityID: o.ID(),
		Approve:       true,
	})
	assert.True(t, shared.IsInvalidState(err), "re-approving an approved listing must be refused")

	err = f.engine.ReviewOpportunity.Handle(f.ctx, ReviewOpportunityCommand{
		ActorID:       f.staff,
		OpportunityID: o.ID(),
		Approve:       false,
	})
	assert.True(t, shared.IsInvalidState(err), "rejecting an approved listing must be refused")
}

func TestReviewOpportunity_StaffOnly(t *testing.T) {
	f := newFixture(t)
	o := f.post(1, opportunity.LevelBasic)

	err := f.engine.ReviewOpportunity.Handle(f.ctx, ReviewOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: o.ID(),
		Approve:       true,
	})
	assert.True(t, shared.IsForbidden(err))
}

func TestEditOpportunity_RevokesApprovalAndChecksOwnership(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(2, opportunity.LevelBasic)

	err := f.engine.EditOpportunity.Handle(f.ctx, EditOpportunityCommand{
		ActorID:       f.repB,
		OpportunityID: o.ID(),
		Draft:         f.draft(2, opportunity.LevelBasic),
	})
	assert.True(t, shared.IsForbidden(err), "non-owner edit must be refused")

	require.NoError(t, f.engine.EditOpportunity.Handle(f.ctx, EditOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: o.ID(),
		Draft:         f.draft(3, opportunity.LevelBasic),
	}))
	assert.Equal(t, opportunity.StatusPending, o.Status())
	assert.False(t, o.Visible())
	assert.Equal(t, 3, o.Slots())
}

func TestDeleteOpportunity_OnlyPendingOrRejected(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)

	err := f.engine.DeleteOpportunity.Handle(f.ctx, DeleteOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: o.ID(),
	})
	assert.True(t, shared.IsInvalidState(err))

	pending := f.post(1, opportunity.LevelBasic)
	require.NoError(t, f.engine.DeleteOpportunity.Handle(f.ctx, DeleteOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: pending.ID(),
	}))

	_, err = f.store.Opportunities().GetByID(f.ctx, pending.ID())
	assert.True(t, shared.IsNotFound(err))
}

// ═══════════════════════════════════════════════════════════════════════════
// Scenario A: full happy path with capacity flip
// ═══════════════════════════════════════════════════════════════════════════

func TestScenarioA_AcceptFillsSingleSlotListing(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)

	app1 := f.apply(f.stu1, o.ID())
	app2 := f.apply(f.stu2, o.ID())
	f.approveApp(app1.ID())

	require.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app1.ID(),
	}))

	assert.True(t, app1.Accepted())
	assert.Equal(t, 1, o.ConfirmedSlots())
	assert.Equal(t, opportunity.StatusFilled, o.Status())
	assert.False(t, o.Visible())
	assert.Equal(t, application.StatusPending, app2.Status(), "rival application stays pending")

	student, err := f.store.GetStudent(f.ctx, f.stu1)
	require.NoError(t, err)
	assert.Equal(t, app1.ID(), student.AcceptedApplicationID())

	// The filled listing is no longer discoverable for anyone.
	_, err = f.engine.SubmitApplication.Handle(f.ctx, SubmitApplicationCommand{
		ActorID:       f.stu2,
		OpportunityID: o.ID(),
	})
	assert.True(t, shared.IsIneligible(err))
}

// ═══════════════════════════════════════════════════════════════════════════
// Scenario B: approve decision requires a published listing
// ═══════════════════════════════════════════════════════════════════════════

func TestScenarioB_ApproveDecisionRequiresApprovedOpportunity(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	// Owner edit drops the listing back to PENDING while the application
	// is still live.
	require.NoError(t, f.engine.EditOpportunity.Handle(f.ctx, EditOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: o.ID(),
		Draft:         f.draft(1, opportunity.LevelBasic),
	}))

	err := f.engine.DecideApplication.Handle(f.ctx, DecideApplicationCommand{
		ActorID:       f.repA,
		ApplicationID: app.ID(),
		Approve:       true,
	})
	assert.True(t, shared.IsInvalidState(err))

	require.NoError(t, f.engine.ReviewOpportunity.Handle(f.ctx, ReviewOpportunityCommand{
		ActorID:       f.staff,
		OpportunityID: o.ID(),
		Approve:       true,
	}))
	require.NoError(t, f.engine.DecideApplication.Handle(f.ctx, DecideApplicationCommand{
		ActorID:       f.repA,
		ApplicationID: app.ID(),
		Approve:       true,
	}))
	assert.Equal(t, application.StatusSuccessful, app.Status())
}

func TestDecideApplication_RejectAllowedAnyOpportunityState(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	require.NoError(t, f.engine.EditOpportunity.Handle(f.ctx, EditOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: o.ID(),
		Draft:         f.draft(1, opportunity.LevelBasic),
	}))

	require.NoError(t, f.engine.DecideApplication.Handle(f.ctx, DecideApplicationCommand{
		ActorID:       f.repA,
		ApplicationID: app.ID(),
		Approve:       false,
	}))
	assert.Equal(t, application.StatusUnsuccessful, app.Status())
}

func TestDecideApplication_OneShot(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())
	f.approveApp(app.ID())

	err := f.engine.DecideApplication.Handle(f.ctx, DecideApplicationCommand{
		ActorID:       f.repA,
		ApplicationID: app.ID(),
		Approve:       false,
	})
	assert.True(t, shared.IsInvalidState(err))
}

// ═══════════════════════════════════════════════════════════════════════════
// Scenario C: pending cap
// ═══════════════════════════════════════════════════════════════════════════

func TestScenarioC_PendingCapAndRecoveryViaWithdrawal(t *testing.T) {
	f := newFixture(t)

	var opps []*opportunity.Opportunity
	for i := 0; i < MaxPendingApplications+1; i++ {
		opps = append(opps, f.postApproved(1, opportunity.LevelBasic))
	}

	var apps []*application.Application
	for i := 0; i < MaxPendingApplications; i++ {
		apps = append(apps, f.apply(f.stu1, opps[i].ID()))
	}

	_, err := f.engine.SubmitApplication.Handle(f.ctx, SubmitApplicationCommand{
		ActorID:       f.stu1,
		OpportunityID: opps[MaxPendingApplications].ID(),
	})
	assert.True(t, shared.IsCapacity(err))

	require.NoError(t, f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.stu1,
		ApplicationID: apps[0].ID(),
	}))

	f.apply(f.stu1, opps[MaxPendingApplications].ID())
}

func TestSubmitApplication_RefusesDuplicateActive(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(2, opportunity.LevelBasic)
	f.apply(f.stu1, o.ID())

	_, err := f.engine.SubmitApplication.Handle(f.ctx, SubmitApplicationCommand{
		ActorID:       f.stu1,
		OpportunityID: o.ID(),
	})
	assert.True(t, shared.IsConflict(err))
}

func TestSubmitApplication_AllowedAgainAfterWithdrawal(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(2, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	require.NoError(t, f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	}))
	f.apply(f.stu1, o.ID())
}

// ═══════════════════════════════════════════════════════════════════════════
// Scenario D: ownership of decisions
// ═══════════════════════════════════════════════════════════════════════════

func TestScenarioD_DecideRequiresOwningRepresentative(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	err := f.engine.DecideApplication.Handle(f.ctx, DecideApplicationCommand{
		ActorID:       f.repB,
		ApplicationID: app.ID(),
		Approve:       true,
	})
	assert.True(t, shared.IsForbidden(err))
}

// ═══════════════════════════════════════════════════════════════════════════
// Scenario E: eligibility policy
// ═══════════════════════════════════════════════════════════════════════════

func TestScenarioE_JuniorStudentsBasicOnly(t *testing.T) {
	f := newFixture(t)
	intermediate := f.postApproved(1, opportunity.LevelIntermediate)
	basic := f.postApproved(1, opportunity.LevelBasic)

	// stu3 is year 1.
	_, err := f.engine.SubmitApplication.Handle(f.ctx, SubmitApplicationCommand{
		ActorID:       f.stu3,
		OpportunityID: intermediate.ID(),
	})
	assert.True(t, shared.IsIneligible(err))

	f.apply(f.stu3, basic.ID())
}

// ═══════════════════════════════════════════════════════════════════════════
// Acceptance rules
// ═══════════════════════════════════════════════════════════════════════════

func TestAcceptOffer_RequiresSuccessfulStatus(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	err := f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	})
	assert.True(t, shared.IsInvalidState(err))
}

func TestAcceptOffer_OwnStudentOnly(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())
	f.approveApp(app.ID())

	err := f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu2,
		ApplicationID: app.ID(),
	})
	assert.True(t, shared.IsForbidden(err))
}

func TestAcceptOffer_SingleAcceptedOfferPerStudent(t *testing.T) {
	f := newFixture(t)
	o1 := f.postApproved(1, opportunity.LevelBasic)
	o2 := f.postApproved(1, opportunity.LevelBasic)

	app1 := f.apply(f.stu1, o1.ID())
	app2 := f.apply(f.stu1, o2.ID())
	f.approveApp(app1.ID())
	f.approveApp(app2.ID())

	require.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app1.ID(),
	}))

	err := f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app2.ID(),
	})
	assert.True(t, shared.IsConflict(err))
}

func TestAcceptOffer_PendingOnFullListingIsInvalidState(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)

	app1 := f.apply(f.stu1, o.ID())
	app2 := f.apply(f.stu2, o.ID())
	f.approveApp(app1.ID())
	require.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app1.ID(),
	}))

	// app2 is both undecided and on a full listing; the decision state is
	// reported, not the capacity.
	err := f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu2,
		ApplicationID: app2.ID(),
	})
	assert.True(t, shared.IsInvalidState(err))
	assert.False(t, shared.IsCapacity(err))
}

func TestAcceptOffer_CapacityRace(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)

	app1 := f.apply(f.stu1, o.ID())
	app2 := f.apply(f.stu2, o.ID())
	f.approveApp(app1.ID())
	f.approveApp(app2.ID())

	require.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app1.ID(),
	}))

	err := f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu2,
		ApplicationID: app2.ID(),
	})
	assert.True(t, shared.IsCapacity(err), "second acceptance on a one-slot listing must be refused")
}

// ═══════════════════════════════════════════════════════════════════════════
// Withdrawal
// ═══════════════════════════════════════════════════════════════════════════

func TestWithdraw_AcceptedApplicationReopensFilledListing(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())
	f.approveApp(app.ID())
	require.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	}))
	require.Equal(t, opportunity.StatusFilled, o.Status())

	require.NoError(t, f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	}))

	assert.Equal(t, application.StatusWithdrawn, app.Status())
	assert.False(t, app.Accepted())
	assert.Equal(t, 0, o.ConfirmedSlots())
	assert.Equal(t, opportunity.StatusApproved, o.Status(), "slot release reopens the listing")
	assert.True(t, o.Visible())

	student, err := f.store.GetStudent(f.ctx, f.stu1)
	require.NoError(t, err)
	assert.False(t, student.HasAcceptedOffer())
}

func TestDeleteOpportunity_RefusedWithConfirmedSlots(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())
	f.approveApp(app.ID())
	require.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	}))

	// Editing drops the filled listing back to PENDING, which makes it
	// deletable by status alone. The confirmed slot must still block it.
	require.NoError(t, f.engine.EditOpportunity.Handle(f.ctx, EditOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: o.ID(),
		Draft:         f.draft(1, opportunity.LevelBasic),
	}))
	require.Equal(t, opportunity.StatusPending, o.Status())

	err := f.engine.DeleteOpportunity.Handle(f.ctx, DeleteOpportunityCommand{
		ActorID:       f.repA,
		OpportunityID: o.ID(),
	})
	assert.True(t, shared.IsInvalidState(err))

	_, err = f.store.Opportunities().GetByID(f.ctx, o.ID())
	assert.NoError(t, err, "listing survives the refused delete")
}

func TestWithdraw_AcceptedApplicationWithMissingListing(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())
	f.approveApp(app.ID())
	require.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	}))

	// Drop the listing behind the engine's back, as a stale snapshot
	// would. The withdrawal must still complete and free the student.
	require.NoError(t, f.store.Opportunities().Remove(f.ctx, o.ID()))

	require.NoError(t, f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	}))
	assert.Equal(t, application.StatusWithdrawn, app.Status())

	student, err := f.store.GetStudent(f.ctx, f.stu1)
	require.NoError(t, err)
	require.False(t, student.HasAcceptedOffer())

	// The freed student can go on to accept a fresh offer.
	o2 := f.postApproved(1, opportunity.LevelBasic)
	app2 := f.apply(f.stu1, o2.ID())
	f.approveApp(app2.ID())
	assert.NoError(t, f.engine.AcceptOffer.Handle(f.ctx, AcceptOfferCommand{
		ActorID:       f.stu1,
		ApplicationID: app2.ID(),
	}))
}

func TestWithdraw_RepresentativeForbidden(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	err := f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.repA,
		ApplicationID: app.ID(),
	})
	assert.True(t, shared.IsForbidden(err))
}

func TestWithdraw_StaffMayWithdrawOnBehalf(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	require.NoError(t, f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.staff,
		ApplicationID: app.ID(),
	}))
	assert.Equal(t, application.StatusWithdrawn, app.Status())
}

func TestWithdraw_OtherStudentForbidden(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	err := f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.stu2,
		ApplicationID: app.ID(),
	})
	assert.True(t, shared.IsForbidden(err))
}

// ═══════════════════════════════════════════════════════════════════════════
// Staff-reviewed withdrawal flow
// ═══════════════════════════════════════════════════════════════════════════

func TestStaffReviewedWithdrawals_FullFlow(t *testing.T) {
	f := newFixture(t)
	f.engine.Deps().StaffReviewedWithdrawals = true

	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	// Direct withdrawal is routed to the request flow.
	err := f.engine.WithdrawApplication.Handle(f.ctx, WithdrawApplicationCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	})
	assert.True(t, shared.IsInvalidState(err))

	res, err := f.engine.RequestWithdrawal.Handle(f.ctx, RequestWithdrawalCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	})
	require.NoError(t, err)
	req := res.Request
	assert.Regexp(t, `^WDR-[0-9A-Z]{6}$`, req.ID())

	// A second request for the same application is refused while one is
	// pending.
	_, err = f.engine.RequestWithdrawal.Handle(f.ctx, RequestWithdrawalCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	})
	assert.True(t, shared.IsConflict(err))

	require.NoError(t, f.engine.ReviewWithdrawal.Handle(f.ctx, ReviewWithdrawalCommand{
		ActorID:      f.staff,
		WithdrawalID: req.ID(),
		Approve:      true,
	}))

	assert.Equal(t, application.ReviewApproved, req.Status())
	assert.Equal(t, application.StatusWithdrawn, app.Status())
}

func TestStaffReviewedWithdrawals_RejectionLeavesApplicationAlone(t *testing.T) {
	f := newFixture(t)
	f.engine.Deps().StaffReviewedWithdrawals = true

	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	res, err := f.engine.RequestWithdrawal.Handle(f.ctx, RequestWithdrawalCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	})
	require.NoError(t, err)

	require.NoError(t, f.engine.ReviewWithdrawal.Handle(f.ctx, ReviewWithdrawalCommand{
		ActorID:      f.staff,
		WithdrawalID: res.Request.ID(),
		Approve:      false,
	}))
	assert.Equal(t, application.StatusPending, app.Status())

	// A mistaken rejection can be reopened and re-ruled.
	require.NoError(t, f.engine.ResetWithdrawalReview.Handle(f.ctx, ResetWithdrawalReviewCommand{
		ActorID:      f.staff,
		WithdrawalID: res.Request.ID(),
	}))
	assert.True(t, res.Request.IsPending())
}

func TestRequestWithdrawal_RefusedWhenFlagDisabled(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	_, err := f.engine.RequestWithdrawal.Handle(f.ctx, RequestWithdrawalCommand{
		ActorID:       f.stu1,
		ApplicationID: app.ID(),
	})
	assert.True(t, shared.IsInvalidState(err))
}

// ═══════════════════════════════════════════════════════════════════════════
// Login and account review
// ═══════════════════════════════════════════════════════════════════════════

func TestLogin_HappyPathAndBadCredential(t *testing.T) {
	f := newFixture(t)

	res, err := f.engine.Login.Handle(f.ctx, LoginCommand{UserID: "stu1", Credential: "pw"})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleStudent, res.Role)

	_, err = f.engine.Login.Handle(f.ctx, LoginCommand{UserID: "STU1", Credential: "wrong"})
	assert.True(t, shared.IsUnauthorized(err))

	_, err = f.engine.Login.Handle(f.ctx, LoginCommand{UserID: "GHOST", Credential: "pw"})
	assert.True(t, shared.IsNotFound(err))
}

func TestLogin_UnapprovedRepresentativeRefused(t *testing.T) {
	f := newFixture(t)

	pending, err := identity.NewRepresentative(shared.MustUserID("REPP"), "Pat", "pw", "Acme", "HR", "Manager")
	require.NoError(t, err)
	require.NoError(t, f.store.AddUser(pending))

	_, err = f.engine.Login.Handle(f.ctx, LoginCommand{UserID: "REPP", Credential: "pw"})
	assert.True(t, shared.IsForbidden(err))

	require.NoError(t, f.engine.ReviewRepresentative.Handle(f.ctx, ReviewRepresentativeCommand{
		ActorID:          f.staff,
		RepresentativeID: pending.ID(),
		Approve:          true,
	}))

	_, err = f.engine.Login.Handle(f.ctx, LoginCommand{UserID: "REPP", Credential: "pw"})
	assert.NoError(t, err)
}

func TestReviewRepresentative_OneShotAndStaffOnly(t *testing.T) {
	f := newFixture(t)

	pending, err := identity.NewRepresentative(shared.MustUserID("REPP"), "Pat", "pw", "Acme", "HR", "Manager")
	require.NoError(t, err)
	require.NoError(t, f.store.AddUser(pending))

	err = f.engine.ReviewRepresentative.Handle(f.ctx, ReviewRepresentativeCommand{
		ActorID:          f.repA,
		RepresentativeID: pending.ID(),
		Approve:          true,
	})
	assert.True(t, shared.IsForbidden(err))

	require.NoError(t, f.engine.ReviewRepresentative.Handle(f.ctx, ReviewRepresentativeCommand{
		ActorID:          f.staff,
		RepresentativeID: pending.ID(),
		Approve:          false,
	}))
	err = f.engine.ReviewRepresentative.Handle(f.ctx, ReviewRepresentativeCommand{
		ActorID:          f.staff,
		RepresentativeID: pending.ID(),
		Approve:          true,
	})
	assert.True(t, shared.IsInvalidState(err))
}

func TestChangeCredential(t *testing.T) {
	f := newFixture(t)

	err := f.engine.ChangeCredential.Handle(f.ctx, ChangeCredentialCommand{
		ActorID:       f.stu1,
		OldCredential: "wrong",
		NewCredential: "next",
	})
	assert.True(t, shared.IsUnauthorized(err))

	require.NoError(t, f.engine.ChangeCredential.Handle(f.ctx, ChangeCredentialCommand{
		ActorID:       f.stu1,
		OldCredential: "pw",
		NewCredential: "next",
	}))

	_, err = f.engine.Login.Handle(f.ctx, LoginCommand{UserID: "STU1", Credential: "next"})
	assert.NoError(t, err)
}

// ═══════════════════════════════════════════════════════════════════════════
// Window boundaries
// ═══════════════════════════════════════════════════════════════════════════

func TestSubmitApplication_WindowBoundaries(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)

	f.clock.Set(timeutil.Date(2026, 12, 31))
	f.apply(f.stu1, o.ID())

	f.clock.Set(timeutil.Date(2027, 1, 1))
	_, err := f.engine.SubmitApplication.Handle(f.ctx, SubmitApplicationCommand{
		ActorID:       f.stu2,
		OpportunityID: o.ID(),
	})
	assert.True(t, shared.IsIneligible(err), "listing closed the day after the close date")
}

// applicationFor is a quick existence probe used by the invariant sweep.
func applicationFor(t *testing.T, f *fixture, id string) *application.Application {
	t.Helper()
	app, err := f.store.Applications().GetByID(f.ctx, id)
	require.NoError(t, err)
	return app
}

func TestEngine_PersistsAcrossHandlers(t *testing.T) {
	f := newFixture(t)
	o := f.postApproved(1, opportunity.LevelBasic)
	app := f.apply(f.stu1, o.ID())

	got := applicationFor(t, f, app.ID())
	assert.Equal(t, f.stu1, got.StudentID())
	assert.Equal(t, o.ID(), got.OpportunityID())
}
