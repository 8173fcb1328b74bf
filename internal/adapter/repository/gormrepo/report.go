package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/report"
)

type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	return translate(r.db.WithContext(ctx).Create(rep).Error, "report")
}

func (r *ReportRepository) GetByID(ctx context.Context, id uint64) (*report.Report, error) {
	var out report.Report
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "report")
}

func (r *ReportRepository) GetByEventID(ctx context.Context, eventID uint64) (*report.Report, error) {
	var out report.Report
	res := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&out)
	return &out, translate(res.Error, "report")
}

func (r *ReportRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&report.Report{}, id)
	if res.Error != nil {
		return translate(res.Error, "report")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "report")
	}
	return nil
}
