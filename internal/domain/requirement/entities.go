package requirement

import (
	"strings"
	"time"

	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/event"
)

// Applicant is the demographic snapshot taken when a volunteer signs up for an event.
type Applicant struct {
	Fullname    string `gorm:"column:fullname;size:160;not null" json:"fullname"`
	Email       string `gorm:"column:email;size:160;not null;index" json:"email"`
	SRCode      string `gorm:"column:srcode;size:32" json:"srcode"`
	Age         int    `gorm:"column:age" json:"age"`
	Birthday    string `gorm:"column:birthday;size:16" json:"birthday"`
	Sex         string `gorm:"column:sex;size:16" json:"sex"`
	Campus      string `gorm:"column:campus;size:120" json:"campus"`
	College     string `gorm:"column:college;size:160" json:"collegeDept"`
	YearLevel   string `gorm:"column:year_level;size:64" json:"yrlevelprogram"`
	Address     string `gorm:"column:address;type:text" json:"address"`
	Contact     string `gorm:"column:contact;size:32" json:"contactNum"`
	FBLink      string `gorm:"column:fblink;size:255" json:"fblink"`
	Affiliation string `gorm:"column:affiliation;size:160" json:"affiliation"`
}

// Table: requirements
type Requirement struct {
	ID        string            `gorm:"column:id;primaryKey;size:64" json:"id"`
	MedCert   string            `gorm:"column:med_cert;type:text" json:"medCert"`
	Waiver    string            `gorm:"column:waiver;type:text" json:"waiver"`
	EventKind event.Kind        `gorm:"column:event_kind;size:16;not null;index:idx_requirements_event" json:"eventType"`
	EventID   uint64            `gorm:"column:event_id;not null;index:idx_requirements_event" json:"eventId"`
	Status    decision.Decision `gorm:"column:status;size:16;not null;default:'pending';index" json:"status"`

	Applicant `gorm:"embedded"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Requirement) TableName() string { return "requirements" }

// VolunteerKey normalizes the applicant email for grouping.
func (r *Requirement) VolunteerKey() string { return strings.ToLower(strings.TrimSpace(r.Email)) }

type Filter struct {
	EventKind event.Kind
	EventID   uint64
	Status    decision.Decision
}
