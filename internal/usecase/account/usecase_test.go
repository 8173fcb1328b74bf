package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vms-backend/internal/adapter/repository/gormrepo"
	domainAccount "vms-backend/internal/domain/account"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/testutil/testdb"
	"vms-backend/pkg/password"
)

func setup(t *testing.T) *Usecase {
	t.Helper()
	password.Cost = bcrypt.MinCost
	return NewUsecase(gormrepo.NewGormUoW(testdb.Open(t)))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	a, err := uc.Create(ctx, CreateInput{Username: "officer1", Password: "secret", AccountType: domainAccount.TypeOfficer})
	require.NoError(t, err)
	require.NotZero(t, a.ID)
	require.True(t, a.Active)
	require.True(t, password.Verify(a.PasswordHash, "secret"))

	_, err = uc.Create(ctx, CreateInput{Username: "officer1", Password: "other", AccountType: domainAccount.TypeAdmin})
	require.True(t, apperr.Is(err, apperr.KindConflict))
	require.Equal(t, []string{"username"}, apperr.FieldsOf(err))

	_, err = uc.Create(ctx, CreateInput{Username: "m", Password: "secret", AccountType: domainAccount.TypeMember})
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	a, err := uc.Create(ctx, CreateInput{Username: "a1", Password: "secret", AccountType: domainAccount.TypeOfficer})
	require.NoError(t, err)
	_, err = uc.Create(ctx, CreateInput{Username: "a2", Password: "secret", AccountType: domainAccount.TypeOfficer})
	require.NoError(t, err)

	taken := "a2"
	_, err = uc.Update(ctx, a.ID, UpdateInput{Username: &taken})
	require.True(t, apperr.Is(err, apperr.KindConflict))

	name, pw, typ, off := "renamed", "newpass", domainAccount.TypeAdmin, false
	got, err := uc.Update(ctx, a.ID, UpdateInput{Username: &name, Password: &pw, AccountType: &typ, Active: &off})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Username)
	require.Equal(t, domainAccount.TypeAdmin, got.AccountType)
	require.False(t, got.Active)
	require.True(t, password.Verify(got.PasswordHash, "newpass"))

	admins, err := uc.List(ctx, domainAccount.Filter{AccountType: domainAccount.TypeAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)

	require.NoError(t, uc.Delete(ctx, a.ID))
	_, err = uc.Get(ctx, a.ID)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.True(t, apperr.Is(uc.Delete(ctx, a.ID), apperr.KindNotFound))
}
