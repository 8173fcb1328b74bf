package account

import (
	"context"
	"strings"

	domainAccount "vms-backend/internal/domain/account"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/uow"
	"vms-backend/pkg/password"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

func (u *Usecase) List(ctx context.Context, f domainAccount.Filter) ([]domainAccount.Account, error) {
	if f.AccountType != "" && !f.AccountType.Valid() {
		return nil, apperr.Validation("unknown account type", "accountType")
	}
	return u.uow.Repos().Accounts.List(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domainAccount.Account, error) {
	return u.uow.Repos().Accounts.GetByID(ctx, id)
}

// Create registers staff accounts. Member accounts only come from membership approval.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domainAccount.Account, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperr.Validation("username is required", "username")
	}
	if in.AccountType != domainAccount.TypeAdmin && in.AccountType != domainAccount.TypeOfficer {
		return nil, apperr.Validation("account type must be admin or officer", "accountType")
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, apperr.Validation("password is not acceptable", "password")
	}

	a := &domainAccount.Account{
		Username:     username,
		PasswordHash: hash,
		AccountType:  in.AccountType,
		Active:       true,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Accounts.GetByUsername(ctx, username); err == nil {
			return apperr.Conflict("username already taken", "username")
		} else if !apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		return r.Accounts.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*domainAccount.Account, error) {
	var out *domainAccount.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Username != nil {
			name := strings.TrimSpace(*in.Username)
			if name == "" {
				return apperr.Validation("username is required", "username")
			}
			if name != a.Username {
				if _, err := r.Accounts.GetByUsername(ctx, name); err == nil {
					return apperr.Conflict("username already taken", "username")
				} else if !apperr.Is(err, apperr.KindNotFound) {
					return err
				}
				a.Username = name
			}
		}
		if in.Password != nil {
			hash, err := password.Hash(*in.Password)
			if err != nil {
				return apperr.Validation("password is not acceptable", "password")
			}
			a.PasswordHash = hash
		}
		if in.AccountType != nil {
			if !in.AccountType.Valid() {
				return apperr.Validation("unknown account type", "accountType")
			}
			a.AccountType = *in.AccountType
		}
		if in.Active != nil {
			a.Active = *in.Active
			if !a.Active {
				if err := r.Sessions.DeleteByUserID(ctx, a.ID); err != nil {
					return err
				}
			}
		}
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Sessions.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		return r.Accounts.Delete(ctx, id)
	})
}
