package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "account")
}

func (r *AccountRepository) Save(ctx context.Context, a *account.Account) error {
	return translate(r.db.WithContext(ctx).Save(a).Error, "account")
}

func (r *AccountRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&account.Account{}, id)
	if res.Error != nil {
		return translate(res.Error, "account")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "account")
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*account.Account, error) {
	var out account.Account
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "account")
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	var out account.Account
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	return &out, translate(res.Error, "account")
}

func (r *AccountRepository) GetByMembershipID(ctx context.Context, membershipID uint64) (*account.Account, error) {
	var out account.Account
	res := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("id ASC").
		First(&out)
	return &out, translate(res.Error, "account")
}

func (r *AccountRepository) List(ctx context.Context, f account.Filter) ([]account.Account, error) {
	var out []account.Account
	q := r.db.WithContext(ctx).Order("id ASC")
	if f.AccountType != "" {
		q = q.Where("account_type = ?", f.AccountType)
	}
	return out, translate(q.Find(&out).Error, "accounts")
}

func (r *AccountRepository) SetActiveByMembershipID(ctx context.Context, membershipID uint64, active bool) error {
	err := r.db.WithContext(ctx).
		Model(&account.Account{}).
		Where("membership_id = ?", membershipID).
		Update("active", active).Error
	return translate(err, "account")
}

type SessionRepository struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) *SessionRepository { return &SessionRepository{db: db} }

func (r *SessionRepository) Create(ctx context.Context, s *account.Session) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "session")
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*account.Session, error) {
	var out account.Session
	res := r.db.WithContext(ctx).Where("token = ?", token).First(&out)
	return &out, translate(res.Error, "session")
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&account.Session{}).Error
	return translate(err, "session")
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID uint64) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&account.Session{}).Error
	return translate(err, "session")
}
