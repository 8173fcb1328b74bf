package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vms-backend/internal/adapter/repository/gormrepo"
	"vms-backend/internal/domain/apperr"
	domainEvent "vms-backend/internal/domain/event"
	domainFeedback "vms-backend/internal/domain/feedback"
	"vms-backend/internal/testutil/testdb"
)

func TestFeedbackLifecycle(t *testing.T) {
	ctx := context.Background()
	tx := gormrepo.NewGormUoW(testdb.Open(t))
	uc := NewUsecase(tx)

	e := &domainEvent.Event{Kind: domainEvent.KindExternal, Title: "Literacy Drive", CreatedBy: 1, Status: domainEvent.StatusSubmitted, SignatoriesID: 1}
	require.NoError(t, tx.Repos().Events.Create(ctx, e))

	_, err := uc.Create(ctx, domainEvent.KindExternal, e.ID, CreateInput{Message: " "})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = uc.Create(ctx, domainEvent.KindInternal, e.ID, CreateInput{Message: "fix budget"})
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	f, err := uc.Create(ctx, domainEvent.KindExternal, e.ID, CreateInput{Message: "fix budget"})
	require.NoError(t, err)
	require.Equal(t, domainFeedback.StateEditing, f.State)

	got, err := tx.Repos().Events.GetByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FeedbackID)
	require.Equal(t, f.ID, *got.FeedbackID)

	_, err = uc.Create(ctx, domainEvent.KindExternal, e.ID, CreateInput{Message: "again"})
	require.True(t, apperr.Is(err, apperr.KindConflict))

	resolved := domainFeedback.StateResolved
	upd, err := uc.Update(ctx, f.ID, UpdateInput{State: &resolved})
	require.NoError(t, err)
	require.Equal(t, domainFeedback.StateResolved, upd.State)
	require.Equal(t, "fix budget", upd.Message)

	byEvent, err := uc.GetByEvent(ctx, domainEvent.KindExternal, e.ID)
	require.NoError(t, err)
	require.Equal(t, f.ID, byEvent.ID)
}
