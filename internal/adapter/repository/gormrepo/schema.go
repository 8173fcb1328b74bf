package gormrepo

import (
	"gorm.io/gorm"

	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/evaluation"
	"vms-backend/internal/domain/event"
	"vms-backend/internal/domain/feedback"
	"vms-backend/internal/domain/membership"
	"vms-backend/internal/domain/report"
	"vms-backend/internal/domain/requirement"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&membership.Membership{},
		&account.Account{},
		&account.Session{},
		&event.Signatories{},
		&event.Event{},
		&feedback.Feedback{},
		&requirement.Requirement{},
		&evaluation.Evaluation{},
		&report.Report{},
		&analytics.SatisfactionSurvey{},
		&analytics.ParticipationHistory{},
		&analytics.SemesterSatisfaction{},
	}
}

// Migrate creates or updates the schema. The same models serve sqlite and mysql.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
