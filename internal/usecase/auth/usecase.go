package auth

import (
	"context"
	"strings"
	"time"

	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/uow"
	"vms-backend/pkg/id"
	"vms-backend/pkg/password"
)

type Usecase struct {
	uow uow.UnitOfWork
	ttl time.Duration
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, ttl time.Duration) *Usecase {
	return &Usecase{uow: tx, ttl: ttl, now: time.Now}
}

// Authenticate returns nil, nil on any credential mismatch so callers cannot
// tell an unknown username from a wrong password.
func (u *Usecase) Authenticate(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, nil
	}

	var res *LoginResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acc, err := r.Accounts.GetByUsername(ctx, username)
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !acc.Active || !password.Verify(acc.PasswordHash, in.Password) {
			return nil
		}

		// one live session per user: clear before insert
		if err := r.Sessions.DeleteByUserID(ctx, acc.ID); err != nil {
			return err
		}
		token, err := id.NewToken()
		if err != nil {
			return apperr.Internal("could not create session", err)
		}
		s := &account.Session{
			Token:       token,
			UserID:      acc.ID,
			AccountType: acc.AccountType,
			ExpiresAt:   u.now().Add(u.ttl).UTC(),
		}
		if err := r.Sessions.Create(ctx, s); err != nil {
			return err
		}

		res = &LoginResult{Session: toSessionDTO(s, acc.Username)}
		if acc.AccountType == account.TypeMember && acc.MembershipID != nil {
			m, err := r.Memberships.GetByID(ctx, *acc.MembershipID)
			switch {
			case err == nil:
				res.MemberData = m
			case !apperr.Is(err, apperr.KindNotFound):
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Session resolves a bearer token. Unknown and expired tokens give nil, nil;
// expired ones are removed on the way.
func (u *Usecase) Session(ctx context.Context, token string) (*account.Session, error) {
	if !id.IsToken(token) {
		return nil, nil
	}
	s, err := u.uow.Repos().Sessions.GetByToken(ctx, token)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(u.now()) {
		if err := u.uow.Repos().Sessions.DeleteByToken(ctx, token); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return s, nil
}

// Current returns the session together with its account.
func (u *Usecase) Current(ctx context.Context, token string) (*SessionDTO, error) {
	s, err := u.Session(ctx, token)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.Auth("session expired or invalid")
	}
	acc, err := u.uow.Repos().Accounts.GetByID(ctx, s.UserID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.Auth("session expired or invalid")
	}
	if err != nil {
		return nil, err
	}
	dto := toSessionDTO(s, acc.Username)
	return &dto, nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return u.uow.Repos().Sessions.DeleteByToken(ctx, token)
}

func toSessionDTO(s *account.Session, username string) SessionDTO {
	return SessionDTO{
		Token:       s.Token,
		UserID:      s.UserID,
		Username:    username,
		AccountType: s.AccountType,
		ExpiresAt:   s.ExpiresAt,
	}
}
