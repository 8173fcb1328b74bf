package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vms-backend/internal/adapter/repository/gormrepo"
	"vms-backend/internal/domain/decision"
	domainEvent "vms-backend/internal/domain/event"
	"vms-backend/internal/domain/membership"
	"vms-backend/internal/domain/requirement"
	"vms-backend/internal/testutil/testdb"
	eventUC "vms-backend/internal/usecase/event"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	tx := gormrepo.NewGormUoW(testdb.Open(t))
	events := eventUC.NewUsecase(tx)
	uc := NewUsecase(tx, events, time.UTC)
	uc.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	r := tx.Repos()

	for i, m := range []membership.Membership{
		{Fullname: "A", Email: "a@x.edu", SRCode: "1", Username: "a", Active: true, Status: decision.Approved, College: "CICS"},
		{Fullname: "B", Email: "b@x.edu", SRCode: "2", Username: "b", Active: false, Status: decision.Approved, College: "CICS"},
		{Fullname: "C", Email: "c@x.edu", SRCode: "3", Username: "c", Active: true, Status: decision.Pending},
	} {
		m := m
		require.NoError(t, r.Memberships.Create(ctx, &m), "member %d", i)
	}

	may := time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC).UnixMilli()
	jan := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC).UnixMilli()
	upcoming, err := events.Create(ctx, domainEvent.KindInternal, eventUC.Input{Title: "May", DurationStart: &may}, 1)
	require.NoError(t, err)
	_, err = events.Create(ctx, domainEvent.KindExternal, eventUC.Input{Title: "Jan", DurationStart: &jan}, 1)
	require.NoError(t, err)
	require.NoError(t, r.Requirements.Create(ctx, &requirement.Requirement{
		ID: "r1", EventKind: domainEvent.KindInternal, EventID: upcoming.ID, Status: decision.Approved,
		Applicant: requirement.Applicant{Fullname: "A", Email: "a@x.edu"},
	}))

	sum, err := uc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, Counts{Total: 3, Pending: 1, Approved: 2}, sum.Members)
	require.Equal(t, 1, sum.ActiveMembers)
	require.Equal(t, 2, sum.Events.Total)
	require.Equal(t, 1, sum.Events.Upcoming)
	require.Equal(t, 2, sum.Events.ByStatus["editing"])
	require.Equal(t, 1, sum.Requirements.Approved)

	monthly, err := uc.Monthly(ctx, 2026)
	require.NoError(t, err)
	require.Equal(t, 1, monthly.Months[0].External)
	require.Equal(t, 1, monthly.Months[4].Internal)
	require.Equal(t, 2, monthly.ByCollege["CICS"])

	active, err := uc.ActiveMembers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	detail, err := uc.EventDetail(ctx, domainEvent.KindInternal, upcoming.ID)
	require.NoError(t, err)
	require.Equal(t, "May", detail.Event.Title)
	require.Equal(t, 1, detail.Analysis.Requirements.Accepted)
}
