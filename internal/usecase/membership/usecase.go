package membership

import (
	"context"
	"strings"

	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/decision"
	domainMembership "vms-backend/internal/domain/membership"
	"vms-backend/internal/domain/notify"
	"vms-backend/internal/domain/uow"
	"vms-backend/pkg/password"
)

type Usecase struct {
	uow      uow.UnitOfWork
	mailer   notify.Mailer
	onChange func(context.Context)
}

func NewUsecase(tx uow.UnitOfWork, mailer notify.Mailer) *Usecase {
	return &Usecase{uow: tx, mailer: mailer}
}

// OnChange registers fn to run after writes that analytics read from.
func (u *Usecase) OnChange(fn func(context.Context)) { u.onChange = fn }

func (u *Usecase) notifyChange(ctx context.Context) {
	if u.onChange != nil {
		u.onChange(ctx)
	}
}

// Apply stores a pending application. Username, email and srcode collisions
// are reported together, in that order.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*domainMembership.Membership, error) {
	m := &domainMembership.Membership{
		Fullname:         strings.TrimSpace(in.Fullname),
		Email:            strings.TrimSpace(in.Email),
		SRCode:           strings.TrimSpace(in.SRCode),
		Age:              in.Age,
		Birthday:         in.Birthday,
		Sex:              in.Sex,
		Campus:           in.Campus,
		College:          in.College,
		YearLevel:        in.YearLevel,
		Address:          in.Address,
		Contact:          in.Contact,
		Blood:            in.Blood,
		Medical:          in.Medical,
		Payment:          in.Payment,
		AreasOfInterest:  in.AreasOfInterest,
		VolunteerHistory: in.VolunteerHistory,
		Motivation:       in.Motivation,
		Username:         strings.TrimSpace(in.Username),
		Active:           true,
		Status:           decision.Pending,
	}
	if m.Fullname == "" || m.Email == "" || m.SRCode == "" || m.Username == "" {
		return nil, apperr.Validation("fullname, email, srcode and username are required")
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, apperr.Validation("password is not acceptable", "password")
	}
	m.PasswordHash = hash

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		taken, err := r.Memberships.Collisions(ctx, m.Username, m.Email, m.SRCode)
		if err != nil {
			return err
		}
		if len(taken) == 0 || taken[0] != "username" {
			// staff accounts own usernames too
			if _, err := r.Accounts.GetByUsername(ctx, m.Username); err == nil {
				taken = append([]string{"username"}, taken...)
			} else if !apperr.Is(err, apperr.KindNotFound) {
				return err
			}
		}
		if len(taken) > 0 {
			return apperr.Conflict("already taken", taken...)
		}
		return r.Memberships.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	u.mail(m, notify.TemplatePending, "Membership application received")
	return m, nil
}

// Approve accepts the application and makes sure exactly one member account
// is linked to it. Repeating it re-activates the same account.
func (u *Usecase) Approve(ctx context.Context, id uint64) (*domainMembership.Membership, error) {
	var (
		out     *domainMembership.Membership
		changed bool
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.Memberships.GetByID(ctx, id)
		if err != nil {
			return err
		}
		changed = m.Status != decision.Approved
		m.Status = decision.Approved
		if err := r.Memberships.Save(ctx, m); err != nil {
			return err
		}

		acc, err := r.Accounts.GetByMembershipID(ctx, m.ID)
		switch {
		case err == nil:
			acc.Active = m.Active
			acc.AccountType = account.TypeMember
			if err := r.Accounts.Save(ctx, acc); err != nil {
				return err
			}
		case apperr.Is(err, apperr.KindNotFound):
			if _, err := r.Accounts.GetByUsername(ctx, m.Username); err == nil {
				return apperr.Conflict("username already used by another account", "username")
			} else if !apperr.Is(err, apperr.KindNotFound) {
				return err
			}
			mid := m.ID
			acc = &account.Account{
				Username:     m.Username,
				PasswordHash: m.PasswordHash,
				AccountType:  account.TypeMember,
				MembershipID: &mid,
				Active:       m.Active,
			}
			if err := r.Accounts.Create(ctx, acc); err != nil {
				return err
			}
		default:
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	if changed {
		u.mail(out, notify.TemplateApproved, "Membership approved")
	}
	return out, nil
}

// Reject keeps any linked account but disables it.
func (u *Usecase) Reject(ctx context.Context, id uint64) (*domainMembership.Membership, error) {
	var (
		out     *domainMembership.Membership
		changed bool
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.Memberships.GetByID(ctx, id)
		if err != nil {
			return err
		}
		changed = m.Status != decision.Rejected
		m.Status = decision.Rejected
		if err := r.Memberships.Save(ctx, m); err != nil {
			return err
		}
		if err := disableLogin(ctx, r, m.ID); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	if changed {
		u.mail(out, notify.TemplateRejected, "Membership application update")
	}
	return out, nil
}

func (u *Usecase) Activate(ctx context.Context, id uint64) (*domainMembership.Membership, error) {
	return u.setActive(ctx, id, true)
}

func (u *Usecase) Deactivate(ctx context.Context, id uint64) (*domainMembership.Membership, error) {
	return u.setActive(ctx, id, false)
}

func (u *Usecase) setActive(ctx context.Context, id uint64, active bool) (*domainMembership.Membership, error) {
	var out *domainMembership.Membership
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.Memberships.GetByID(ctx, id)
		if err != nil {
			return err
		}
		m.Active = active
		if err := r.Memberships.Save(ctx, m); err != nil {
			return err
		}
		// a rejected or pending applicant never gets a usable login
		if active && m.Status == decision.Approved {
			err = r.Accounts.SetActiveByMembershipID(ctx, m.ID, true)
		} else {
			err = disableLogin(ctx, r, m.ID)
		}
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	return out, nil
}

func (u *Usecase) CheckStatus(ctx context.Context, email string) (*StatusDTO, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Validation("email is required", "email")
	}
	m, err := u.uow.Repos().Memberships.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &StatusDTO{
		Status:   m.Status,
		Accepted: m.Status.Accepted(),
		Active:   m.Active,
		Profile: Profile{
			Fullname:  m.Fullname,
			Email:     m.Email,
			SRCode:    m.SRCode,
			College:   m.College,
			YearLevel: m.YearLevel,
			AppliedAt: m.CreatedAt,
		},
	}, nil
}

func (u *Usecase) List(ctx context.Context, f domainMembership.Filter) ([]domainMembership.Membership, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("unknown status", "status")
	}
	return u.uow.Repos().Memberships.List(ctx, f)
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domainMembership.Membership, error) {
	return u.uow.Repos().Memberships.GetByID(ctx, id)
}

func (u *Usecase) mail(m *domainMembership.Membership, template, subject string) {
	u.mailer.Enqueue(notify.Message{
		To:       m.Email,
		ToName:   m.Fullname,
		Subject:  subject,
		Template: template,
		Data:     map[string]any{"name": m.Fullname, "username": m.Username},
	})
}

// disableLogin deactivates the membership's account and ends its session.
func disableLogin(ctx context.Context, r uow.Repos, membershipID uint64) error {
	if err := r.Accounts.SetActiveByMembershipID(ctx, membershipID, false); err != nil {
		return err
	}
	acc, err := r.Accounts.GetByMembershipID(ctx, membershipID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.Sessions.DeleteByUserID(ctx, acc.ID)
}
