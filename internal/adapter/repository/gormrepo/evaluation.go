package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/evaluation"
)

type EvaluationRepository struct{ db *gorm.DB }

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) Create(ctx context.Context, e *evaluation.Evaluation) error {
	return translate(r.db.WithContext(ctx).Create(e).Error, "evaluation")
}

func (r *EvaluationRepository) Save(ctx context.Context, e *evaluation.Evaluation) error {
	return translate(r.db.WithContext(ctx).Save(e).Error, "evaluation")
}

func (r *EvaluationRepository) GetByID(ctx context.Context, id uint64) (*evaluation.Evaluation, error) {
	var out evaluation.Evaluation
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "evaluation")
}

func (r *EvaluationRepository) GetByRequirementID(ctx context.Context, requirementID string) (*evaluation.Evaluation, error) {
	var out evaluation.Evaluation
	res := r.db.WithContext(ctx).Where("requirement_id = ?", requirementID).First(&out)
	return &out, translate(res.Error, "evaluation")
}

func (r *EvaluationRepository) List(ctx context.Context, f evaluation.Filter) ([]evaluation.Evaluation, error) {
	var out []evaluation.Evaluation
	if f.RequirementIDs != nil && len(f.RequirementIDs) == 0 {
		return out, nil
	}
	q := r.db.WithContext(ctx).Order("id ASC")
	if f.RequirementIDs != nil {
		q = q.Where("requirement_id IN ?", f.RequirementIDs)
	}
	if f.FinalizedOnly {
		q = q.Where("finalized = ?", true)
	}
	return out, translate(q.Find(&out).Error, "evaluations")
}

func (r *EvaluationRepository) DeleteByRequirementIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Where("requirement_id IN ?", ids).Delete(&evaluation.Evaluation{}).Error
	return translate(err, "evaluation")
}
