package uow

import (
	"context"

	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/evaluation"
	"vms-backend/internal/domain/event"
	"vms-backend/internal/domain/feedback"
	"vms-backend/internal/domain/membership"
	"vms-backend/internal/domain/report"
	"vms-backend/internal/domain/requirement"
)

// Repos is the full repository set bound to one transaction.
type Repos struct {
	Accounts     account.Repository
	Sessions     account.SessionRepository
	Memberships  membership.Repository
	Events       event.Repository
	Signatories  event.SignatoriesRepository
	Feedback     feedback.Repository
	Requirements requirement.Repository
	Evaluations  evaluation.Repository
	Reports      report.Repository
	Analytics    analytics.Repository
}

type UnitOfWork interface {
	// Repos returns repositories bound to the plain connection.
	Repos() Repos
	// WithinTx runs fn in one transaction; a returned error rolls it back.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
