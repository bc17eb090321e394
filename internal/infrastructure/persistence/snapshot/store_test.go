package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/persistence/memory"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/timeutil"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), logger.New(logger.Options{Level: logger.LevelError}))
	require.NoError(t, err)
	return s
}

func testListing(t *testing.T, id string) *opportunity.Opportunity {
	t.Helper()
	window, err := shared.NewDateRange(timeutil.Date(2026, 1, 1), timeutil.Date(2026, 12, 31))
	require.NoError(t, err)
	o, err := opportunity.New(id, shared.MustUserID("REP1"), opportunity.Draft{
		Title:          "Intern",
		Description:    "desc",
		PreferredMajor: shared.MajorComputerScience,
		Level:          opportunity.LevelBasic,
		Window:         window,
		Slots:          2,
	})
	require.NoError(t, err)
	return o
}

func TestLoad_EmptyOnMissingFiles(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	users, err := s.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	opps, err := s.LoadOpportunities(ctx)
	require.NoError(t, err)
	assert.Empty(t, opps)

	apps, err := s.LoadApplications(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	wdrs, err := s.LoadWithdrawalRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, wdrs)
}

func TestSaveLoad_Opportunities(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	o := testListing(t, "ITP-000001")
	require.NoError(t, o.Approve())
	require.NoError(t, o.ConfirmSlot())
	require.NoError(t, s.SaveOpportunities(ctx, []*opportunity.Opportunity{o}))

	loaded, err := s.LoadOpportunities(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, o.ID(), got.ID())
	assert.Equal(t, opportunity.StatusApproved, got.Status())
	assert.Equal(t, 1, got.ConfirmedSlots())
	assert.True(t, got.Visible())
	assert.Equal(t, o.Window(), got.Window())
}

func TestSaveLoad_UsersAllRoles(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	student, err := identity.NewStudent(shared.MustUserID("STU1"), "Ada", "pw", 3, shared.MajorDataScience)
	require.NoError(t, err)
	student.RecordApplication("APP-000001")

	rep, err := identity.NewRepresentative(shared.MustUserID("REP1"), "Bea", "pw", "Acme", "HR", "Manager")
	require.NoError(t, err)
	require.NoError(t, rep.ReviewAccount(true))

	staff, err := identity.NewStaff(shared.MustUserID("STF1"), "Cem", "pw", "Careers")
	require.NoError(t, err)

	require.NoError(t, s.SaveUsers(ctx, []identity.User{student, rep, staff}))

	loaded, err := s.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	gotStudent, ok := loaded[0].(*identity.Student)
	require.True(t, ok)
	assert.Equal(t, 3, gotStudent.YearOfStudy())
	assert.Equal(t, []string{"APP-000001"}, gotStudent.ApplicationIDs())

	gotRep, ok := loaded[1].(*identity.CompanyRepresentative)
	require.True(t, ok)
	assert.Equal(t, identity.AccountApproved, gotRep.AccountStatus())

	_, ok = loaded[2].(*identity.CareerCenterStaff)
	assert.True(t, ok)
}

func TestSaveLoad_ApplicationsAndWithdrawals(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	now := timeutil.Date(2026, 3, 1)

	a, err := application.New("APP-000001", shared.MustUserID("STU1"), "ITP-000001", now)
	require.NoError(t, err)
	require.NoError(t, a.MarkDecision(true, now))
	require.NoError(t, a.MarkAccepted())
	require.NoError(t, s.SaveApplications(ctx, []*application.Application{a}))

	w, err := application.NewWithdrawalRequest("WDR-000001", "APP-000001", shared.MustUserID("STU1"), now)
	require.NoError(t, err)
	require.NoError(t, s.SaveWithdrawalRequests(ctx, []*application.WithdrawalRequest{w}))

	apps, err := s.LoadApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.True(t, apps[0].Accepted())
	assert.Equal(t, application.StatusSuccessful, apps[0].Status())

	wdrs, err := s.LoadWithdrawalRequests(ctx)
	require.NoError(t, err)
	require.Len(t, wdrs, 1)
	assert.True(t, wdrs[0].IsPending())
}

func TestLoad_RejectsUnknownSchemaVersion(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	path := filepath.Join(s.Dir(), "opportunities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "records": []}`), 0o644))

	_, err := s.LoadOpportunities(ctx)
	assert.Error(t, err)
}

func TestCheckpoint_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	mem := memory.NewStore()
	student, err := identity.NewStudent(shared.MustUserID("STU1"), "Ada", "pw", 2, shared.MajorComputerScience)
	require.NoError(t, err)
	require.NoError(t, mem.AddUser(student))
	require.NoError(t, mem.Opportunities().Add(ctx, testListing(t, "ITP-000001")))

	chk := NewCheckpoint(s, mem)
	require.NoError(t, chk.SaveUsers(ctx))
	require.NoError(t, chk.SaveOpportunities(ctx))
	require.NoError(t, chk.SaveApplications(ctx))
	require.NoError(t, chk.SaveWithdrawalRequests(ctx))

	fresh := memory.NewStore()
	require.NoError(t, NewCheckpoint(s, fresh).Restore(ctx))

	users, err := fresh.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	opps, err := fresh.Opportunities().List(ctx)
	require.NoError(t, err)
	require.Len(t, opps, 1)
	assert.Equal(t, "ITP-000001", opps[0].ID())
}
