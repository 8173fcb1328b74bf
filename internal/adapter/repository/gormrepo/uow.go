package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Accounts:     &AccountRepository{db: db},
		Sessions:     &SessionRepository{db: db},
		Memberships:  &MembershipRepository{db: db},
		Events:       &EventRepository{db: db},
		Signatories:  &SignatoriesRepository{db: db},
		Feedback:     &FeedbackRepository{db: db},
		Requirements: &RequirementRepository{db: db},
		Evaluations:  &EvaluationRepository{db: db},
		Reports:      &ReportRepository{db: db},
		Analytics:    &AnalyticsRepository{db: db},
	}
}

func (u *GormUoW) Repos() uow.Repos { return reposFor(u.db) }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}
