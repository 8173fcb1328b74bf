package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vms-backend/internal/adapter/repository/gormrepo"
	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/membership"
	"vms-backend/internal/testutil/testdb"
	"vms-backend/pkg/password"
)

func setup(t *testing.T) (*Usecase, *gormrepo.GormUoW) {
	t.Helper()
	password.Cost = bcrypt.MinCost
	tx := gormrepo.NewGormUoW(testdb.Open(t))
	return NewUsecase(tx, time.Hour), tx
}

func seedAccount(t *testing.T, tx *gormrepo.GormUoW, a *account.Account, plain string) {
	t.Helper()
	h, err := password.Hash(plain)
	if err != nil {
		t.Fatal(err)
	}
	a.PasswordHash = h
	if err := tx.Repos().Accounts.Create(context.Background(), a); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	uc, tx := setup(t)
	seedAccount(t, tx, &account.Account{Username: "admin", AccountType: account.TypeAdmin, Active: true}, "pw")
	seedAccount(t, tx, &account.Account{Username: "off", AccountType: account.TypeOfficer, Active: false}, "pw")

	tests := []struct {
		name     string
		in       LoginInput
		wantNone bool
	}{
		{name: "valid credentials", in: LoginInput{Username: "admin", Password: "pw"}},
		{name: "wrong password", in: LoginInput{Username: "admin", Password: "nope"}, wantNone: true},
		{name: "unknown user", in: LoginInput{Username: "ghost", Password: "pw"}, wantNone: true},
		{name: "inactive account", in: LoginInput{Username: "off", Password: "pw"}, wantNone: true},
		{name: "empty password", in: LoginInput{Username: "admin"}, wantNone: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := uc.Authenticate(ctx, tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNone {
				if res != nil {
					t.Fatalf("expected no session, got %+v", res)
				}
				return
			}
			if res == nil || len(res.Session.Token) != 32 {
				t.Fatalf("expected a 32-char token, got %+v", res)
			}
			if res.Session.AccountType != account.TypeAdmin {
				t.Fatalf("accountType = %s", res.Session.AccountType)
			}
		})
	}
}

func TestAuthenticate_ReplacesPreviousSession(t *testing.T) {
	ctx := context.Background()
	uc, tx := setup(t)
	seedAccount(t, tx, &account.Account{Username: "admin", AccountType: account.TypeAdmin, Active: true}, "pw")

	first, err := uc.Authenticate(ctx, LoginInput{Username: "admin", Password: "pw"})
	if err != nil || first == nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := uc.Authenticate(ctx, LoginInput{Username: "admin", Password: "pw"})
	if err != nil || second == nil {
		t.Fatalf("second login: %v", err)
	}
	if first.Session.Token == second.Session.Token {
		t.Fatal("expected a fresh token")
	}
	if s, _ := uc.Session(ctx, first.Session.Token); s != nil {
		t.Fatal("old token still resolves")
	}
	if s, _ := uc.Session(ctx, second.Session.Token); s == nil {
		t.Fatal("new token does not resolve")
	}
}

func TestAuthenticate_MemberData(t *testing.T) {
	ctx := context.Background()
	uc, tx := setup(t)
	m := &membership.Membership{Fullname: "Ana Cruz", Email: "ana@x.edu", SRCode: "21-0001", Username: "ana", Active: true}
	if err := tx.Repos().Memberships.Create(ctx, m); err != nil {
		t.Fatal(err)
	}
	seedAccount(t, tx, &account.Account{Username: "ana", AccountType: account.TypeMember, MembershipID: &m.ID, Active: true}, "pw")

	res, err := uc.Authenticate(ctx, LoginInput{Username: "ana", Password: "pw"})
	if err != nil || res == nil {
		t.Fatalf("login: %v", err)
	}
	if res.MemberData == nil || res.MemberData.Email != "ana@x.edu" {
		t.Fatalf("memberData = %+v", res.MemberData)
	}
}

func TestSession_Expired(t *testing.T) {
	ctx := context.Background()
	uc, tx := setup(t)
	seedAccount(t, tx, &account.Account{Username: "admin", AccountType: account.TypeAdmin, Active: true}, "pw")

	res, err := uc.Authenticate(ctx, LoginInput{Username: "admin", Password: "pw"})
	if err != nil || res == nil {
		t.Fatalf("login: %v", err)
	}
	uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	s, err := uc.Session(ctx, res.Session.Token)
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Fatal("expired session resolved")
	}
	if _, err := tx.Repos().Sessions.GetByToken(ctx, res.Session.Token); err == nil {
		t.Fatal("expired session row was not deleted")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	uc, tx := setup(t)
	seedAccount(t, tx, &account.Account{Username: "admin", AccountType: account.TypeAdmin, Active: true}, "pw")
	res, _ := uc.Authenticate(ctx, LoginInput{Username: "admin", Password: "pw"})

	for i := 0; i < 2; i++ {
		if err := uc.Logout(ctx, res.Session.Token); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
	}
	if _, err := uc.Current(ctx, res.Session.Token); err == nil {
		t.Fatal("expected auth error after logout")
	}
}
