package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/requirement"
)

type RequirementRepository struct{ db *gorm.DB }

func NewRequirementRepository(db *gorm.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

func (r *RequirementRepository) Create(ctx context.Context, req *requirement.Requirement) error {
	return translate(r.db.WithContext(ctx).Create(req).Error, "requirement")
}

func (r *RequirementRepository) Save(ctx context.Context, req *requirement.Requirement) error {
	return translate(r.db.WithContext(ctx).Save(req).Error, "requirement")
}

func (r *RequirementRepository) GetByID(ctx context.Context, id string) (*requirement.Requirement, error) {
	var out requirement.Requirement
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "requirement")
}

func (r *RequirementRepository) List(ctx context.Context, f requirement.Filter) ([]requirement.Requirement, error) {
	var out []requirement.Requirement
	q := r.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if f.EventKind != "" {
		q = q.Where("event_kind = ?", f.EventKind)
	}
	if f.EventID != 0 {
		q = q.Where("event_id = ?", f.EventID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return out, translate(q.Find(&out).Error, "requirements")
}

func (r *RequirementRepository) DeleteByEventID(ctx context.Context, eventID uint64) error {
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&requirement.Requirement{}).Error
	return translate(err, "requirement")
}
