package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/analytics"
)

type AnalyticsRepository struct{ db *gorm.DB }

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) ListSurveys(ctx context.Context, eventID uint64) ([]analytics.SatisfactionSurvey, error) {
	var out []analytics.SatisfactionSurvey
	q := r.db.WithContext(ctx).Order("id ASC")
	if eventID != 0 {
		q = q.Where("event_id = ?", eventID)
	}
	return out, translate(q.Find(&out).Error, "satisfaction surveys")
}

func (r *AnalyticsRepository) CreateSurvey(ctx context.Context, s *analytics.SatisfactionSurvey) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "satisfaction survey")
}

func (r *AnalyticsRepository) SaveSurvey(ctx context.Context, s *analytics.SatisfactionSurvey) error {
	return translate(r.db.WithContext(ctx).Save(s).Error, "satisfaction survey")
}

func (r *AnalyticsRepository) DeleteSurveys(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Delete(&analytics.SatisfactionSurvey{}, ids).Error, "satisfaction survey")
}

func (r *AnalyticsRepository) ListHistory(ctx context.Context, f analytics.HistoryFilter) ([]analytics.ParticipationHistory, error) {
	var out []analytics.ParticipationHistory
	q := r.db.WithContext(ctx).Order("semester ASC, volunteer_email ASC")
	if f.Semester != "" {
		q = q.Where("semester = ?", f.Semester)
	}
	if f.Email != "" {
		q = q.Where("volunteer_email = ?", f.Email)
	}
	return out, translate(q.Find(&out).Error, "participation history")
}

func (r *AnalyticsRepository) CreateHistory(ctx context.Context, h *analytics.ParticipationHistory) error {
	return translate(r.db.WithContext(ctx).Create(h).Error, "participation history")
}

func (r *AnalyticsRepository) SaveHistory(ctx context.Context, h *analytics.ParticipationHistory) error {
	return translate(r.db.WithContext(ctx).Save(h).Error, "participation history")
}

func (r *AnalyticsRepository) DeleteHistory(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Delete(&analytics.ParticipationHistory{}, ids).Error, "participation history")
}

func (r *AnalyticsRepository) DeleteHistoryByEmailPatterns(ctx context.Context, patterns []string) (int64, error) {
	if len(patterns) == 0 {
		return 0, nil
	}
	q := r.db.WithContext(ctx).Where("LOWER(volunteer_email) LIKE ?", patterns[0])
	for _, p := range patterns[1:] {
		q = q.Or("LOWER(volunteer_email) LIKE ?", p)
	}
	res := q.Delete(&analytics.ParticipationHistory{})
	return res.RowsAffected, translate(res.Error, "participation history")
}

func (r *AnalyticsRepository) ListSemesterSatisfaction(ctx context.Context) ([]analytics.SemesterSatisfaction, error) {
	var out []analytics.SemesterSatisfaction
	err := r.db.WithContext(ctx).Order("year ASC, semester ASC").Find(&out).Error
	return out, translate(err, "semester satisfaction")
}

func (r *AnalyticsRepository) ReplaceSemesterSatisfaction(ctx context.Context, rows []analytics.SemesterSatisfaction) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&analytics.SemesterSatisfaction{}).Error; err != nil {
		return translate(err, "semester satisfaction")
	}
	if len(rows) == 0 {
		return nil
	}
	return translate(db.Create(&rows).Error, "semester satisfaction")
}

func (r *AnalyticsRepository) Truncate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, m := range []any{
		&analytics.SatisfactionSurvey{},
		&analytics.ParticipationHistory{},
		&analytics.SemesterSatisfaction{},
	} {
		if err := db.Where("1 = 1").Delete(m).Error; err != nil {
			return translate(err, "analytics")
		}
	}
	return nil
}
