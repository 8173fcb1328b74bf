package report

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"vms-backend/internal/domain/event"
)

// Budget is only filled for internal events.
type Budget struct {
	BudgetUtilized       float64 `gorm:"column:budget_utilized" json:"budgetUtilized"`
	BudgetUtilizedSource string  `gorm:"column:budget_utilized_source;size:160" json:"budgetUtilizedSrc"`
	PSAttribution        float64 `gorm:"column:ps_attribution" json:"psAttribution"`
	PSAttributionSource  string  `gorm:"column:ps_attribution_source;size:160" json:"psAttributionSrc"`
}

// Table: reports. At most one report per event.
type Report struct {
	ID            uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventKind     event.Kind     `gorm:"column:event_kind;size:16;not null" json:"eventType"`
	EventID       uint64         `gorm:"column:event_id;not null;uniqueIndex:ux_reports_event" json:"eventId"`
	Narrative     string         `gorm:"column:narrative;type:text" json:"narrative"`
	Photos        datatypes.JSON `gorm:"column:photos" json:"photos"`
	PhotoCaptions datatypes.JSON `gorm:"column:photo_captions" json:"photoCaptions"`
	SignatoriesID uint64         `gorm:"column:signatories_id;not null" json:"signatoriesId"`

	Budget `gorm:"embedded"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Report) TableName() string { return "reports" }

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uint64) (*Report, error)
	GetByEventID(ctx context.Context, eventID uint64) (*Report, error)
	Delete(ctx context.Context, id uint64) error
}
