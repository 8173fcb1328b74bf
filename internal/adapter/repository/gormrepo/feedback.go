package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/feedback"
)

type FeedbackRepository struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository { return &FeedbackRepository{db: db} }

func (r *FeedbackRepository) Create(ctx context.Context, f *feedback.Feedback) error {
	return translate(r.db.WithContext(ctx).Create(f).Error, "feedback")
}

func (r *FeedbackRepository) Save(ctx context.Context, f *feedback.Feedback) error {
	return translate(r.db.WithContext(ctx).Save(f).Error, "feedback")
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id uint64) (*feedback.Feedback, error) {
	var out feedback.Feedback
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "feedback")
}

func (r *FeedbackRepository) GetByEventID(ctx context.Context, eventID uint64) (*feedback.Feedback, error) {
	var out feedback.Feedback
	res := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&out)
	return &out, translate(res.Error, "feedback")
}

func (r *FeedbackRepository) DeleteByEventID(ctx context.Context, eventID uint64) error {
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&feedback.Feedback{}).Error
	return translate(err, "feedback")
}
