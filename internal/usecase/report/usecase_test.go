package report

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"vms-backend/internal/adapter/repository/gormrepo"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/blob"
	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/evaluation"
	domainEvent "vms-backend/internal/domain/event"
	domainReport "vms-backend/internal/domain/report"
	"vms-backend/internal/domain/requirement"
	"vms-backend/internal/testutil/blobmock"
	"vms-backend/internal/testutil/testdb"
)

func setup(t *testing.T) (*Usecase, *gormrepo.GormUoW, *blobmock.Store, *domainEvent.Event) {
	t.Helper()
	ctx := context.Background()
	tx := gormrepo.NewGormUoW(testdb.Open(t))
	s := domainEvent.DefaultSignatories()
	require.NoError(t, tx.Repos().Signatories.Create(ctx, s))
	e := &domainEvent.Event{
		Kind: domainEvent.KindInternal, Title: "Mangrove Planting", CreatedBy: 1,
		Status: domainEvent.StatusAccepted, SignatoriesID: s.ID,
		Internal: domainEvent.InternalDetails{TargetParticipants: 4},
	}
	require.NoError(t, tx.Repos().Events.Create(ctx, e))
	blobs := blobmock.New()
	return NewUsecase(tx, blobs), tx, blobs, e
}

func photo(name string) blob.File {
	return blob.File{Filename: name, ContentType: "image/png", Body: strings.NewReader("\x89PNG")}
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	uc, tx, blobs, e := setup(t)

	rep, err := uc.Create(ctx, domainEvent.KindInternal, e.ID, CreateInput{
		Narrative:     "Planted 300 seedlings.",
		PhotoCaptions: []string{"before", "after"},
		Budget:        &domainReport.Budget{BudgetUtilized: 1500},
	}, []blob.File{photo("a.png"), photo("b.png")})
	require.NoError(t, err)
	require.NotZero(t, rep.SignatoriesID)
	require.NotEqual(t, e.SignatoriesID, rep.SignatoriesID)
	require.Equal(t, 1500.0, rep.BudgetUtilized)

	var photos []string
	require.NoError(t, json.Unmarshal(rep.Photos, &photos))
	require.Len(t, photos, 2)
	require.Len(t, blobs.Files, 2)

	_, err = uc.Create(ctx, domainEvent.KindInternal, e.ID, CreateInput{Narrative: "again"}, nil)
	require.True(t, apperr.Is(err, apperr.KindConflict))

	got, err := uc.GetByEvent(ctx, domainEvent.KindInternal, e.ID)
	require.NoError(t, err)
	require.Equal(t, rep.ID, got.ID)
	_, err = uc.GetByEvent(ctx, domainEvent.KindExternal, e.ID)
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, uc.Delete(ctx, rep.ID))
	require.Empty(t, blobs.Files)
	_, err = tx.Repos().Signatories.GetByID(ctx, rep.SignatoriesID)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.True(t, apperr.Is(uc.Delete(ctx, rep.ID), apperr.KindNotFound))
}

func TestCreate_RejectsBadUpload(t *testing.T) {
	ctx := context.Background()
	uc, _, blobs, e := setup(t)
	bad := blob.File{Filename: "x.txt", ContentType: "text/plain", Body: strings.NewReader("hi")}

	_, err := uc.Create(ctx, domainEvent.KindInternal, e.ID, CreateInput{Narrative: "n"}, []blob.File{photo("a.png"), bad})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	require.Empty(t, blobs.Files)
}

func TestAnalytics(t *testing.T) {
	ctx := context.Background()
	uc, tx, _, e := setup(t)
	r := tx.Repos()
	for i, crit := range []string{`{"overall":4}`, `{"overall":2}`, ``} {
		id := string(rune('a' + i))
		require.NoError(t, r.Requirements.Create(ctx, &requirement.Requirement{
			ID: id, EventKind: domainEvent.KindInternal, EventID: e.ID, Status: decision.Approved,
			Applicant: requirement.Applicant{Fullname: id, Email: id + "@x.edu"},
		}))
		require.NoError(t, r.Evaluations.Create(ctx, &evaluation.Evaluation{RequirementID: id, Criteria: datatypes.JSON(crit), Finalized: true}))
	}

	a, err := uc.Analytics(ctx, domainEvent.KindInternal, e.ID)
	require.NoError(t, err)
	require.False(t, a.HasReport)
	require.Equal(t, 3, a.Volunteers)
	require.Equal(t, 2, a.Attended)
	require.Equal(t, 66.67, a.AttendanceRate)
	require.Equal(t, 2.0, a.AverageSatisfaction)
	require.Equal(t, 50.0, a.TargetReachRate)
}
