package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"vms-backend/internal/domain/event"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	return translate(r.db.WithContext(ctx).Create(e).Error, "event")
}

func (r *EventRepository) Save(ctx context.Context, e *event.Event) error {
	return translate(r.db.WithContext(ctx).Save(e).Error, "event")
}

func (r *EventRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&event.Event{}, id)
	if res.Error != nil {
		return translate(res.Error, "event")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "event")
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint64) (*event.Event, error) {
	var out event.Event
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "event")
}

func (r *EventRepository) List(ctx context.Context, f event.Filter) ([]event.Event, error) {
	var out []event.Event
	q := r.db.WithContext(ctx).Order("duration_start DESC, id DESC")
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PublicOnly {
		q = q.Where("status = ? AND to_public = ?", event.StatusAccepted, true)
	}
	return out, translate(q.Find(&out).Error, "events")
}

type SignatoriesRepository struct{ db *gorm.DB }

func NewSignatoriesRepository(db *gorm.DB) *SignatoriesRepository {
	return &SignatoriesRepository{db: db}
}

func (r *SignatoriesRepository) Create(ctx context.Context, s *event.Signatories) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "signatories")
}

func (r *SignatoriesRepository) Save(ctx context.Context, s *event.Signatories) error {
	return translate(r.db.WithContext(ctx).Save(s).Error, "signatories")
}

func (r *SignatoriesRepository) Delete(ctx context.Context, id uint64) error {
	return translate(r.db.WithContext(ctx).Delete(&event.Signatories{}, id).Error, "signatories")
}

func (r *SignatoriesRepository) GetByID(ctx context.Context, id uint64) (*event.Signatories, error) {
	var out event.Signatories
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "signatories")
}
