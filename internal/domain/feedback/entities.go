package feedback

import (
	"context"
	"time"

	"vms-backend/internal/domain/event"
)

type State string

const (
	StateEditing   State = "editing"
	StateSubmitted State = "submitted"
	StateResolved  State = "resolved"
)

func (s State) Valid() bool {
	switch s {
	case StateEditing, StateSubmitted, StateResolved:
		return true
	}
	return false
}

// Table: feedback. At most one row per event.
type Feedback struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventKind event.Kind `gorm:"column:event_kind;size:16;not null" json:"eventType"`
	EventID   uint64     `gorm:"column:event_id;not null;uniqueIndex:ux_feedback_event" json:"eventId"`
	Message   string     `gorm:"column:message;type:text" json:"message"`
	State     State      `gorm:"column:state;size:16;not null;default:'editing'" json:"state"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Feedback) TableName() string { return "feedback" }

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	Save(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id uint64) (*Feedback, error)
	GetByEventID(ctx context.Context, eventID uint64) (*Feedback, error)
	DeleteByEventID(ctx context.Context, eventID uint64) error
}
