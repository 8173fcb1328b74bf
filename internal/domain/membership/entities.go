package membership

import (
	"time"

	"vms-backend/internal/domain/decision"
)

// Table: memberships
type Membership struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Fullname  string `gorm:"column:fullname;size:160;not null" json:"fullname"`
	Email     string `gorm:"column:email;size:160;not null;uniqueIndex:ux_memberships_email" json:"email"`
	SRCode    string `gorm:"column:srcode;size:32;not null;uniqueIndex:ux_memberships_srcode" json:"srcode"`
	Age       int    `gorm:"column:age" json:"age"`
	Birthday  string `gorm:"column:birthday;size:16" json:"birthday"`
	Sex       string `gorm:"column:sex;size:16" json:"sex"`
	Campus    string `gorm:"column:campus;size:120" json:"campus"`
	College   string `gorm:"column:college;size:160;index" json:"collegeDept"`
	YearLevel string `gorm:"column:year_level;size:64" json:"yrlevelprogram"`
	Address   string `gorm:"column:address;type:text" json:"address"`
	Contact   string `gorm:"column:contact;size:32" json:"contactNum"`
	Blood     string `gorm:"column:blood;size:8" json:"bloodType"`
	Medical   string `gorm:"column:medical;type:text" json:"medicalCondition"`
	Payment   string `gorm:"column:payment;size:64" json:"paymentOption"`

	AreasOfInterest  string `gorm:"column:areas_of_interest;type:text" json:"areasOfInterest"`
	VolunteerHistory string `gorm:"column:volunteer_history;type:text" json:"volunteerHistory"`
	Motivation       string `gorm:"column:motivation;type:text" json:"reasonForJoining"`

	Username     string            `gorm:"column:username;size:64;not null;uniqueIndex:ux_memberships_username" json:"username"`
	PasswordHash string            `gorm:"column:password_hash;size:100;not null" json:"-"`
	Active       bool              `gorm:"column:active;not null" json:"active"`
	Status       decision.Decision `gorm:"column:status;size:16;not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Membership) TableName() string { return "memberships" }

type Filter struct {
	Status decision.Decision
	Active *bool
}
