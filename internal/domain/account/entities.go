package account

import "time"

type Type string

const (
	TypeAdmin   Type = "admin"
	TypeOfficer Type = "officer"
	TypeMember  Type = "member"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAdmin, TypeOfficer, TypeMember:
		return true
	}
	return false
}

// Table: accounts
type Account struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"column:username;size:64;not null;uniqueIndex:ux_accounts_username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	AccountType  Type      `gorm:"column:account_type;size:16;not null;index" json:"accountType"`
	MembershipID *uint64   `gorm:"column:membership_id;index" json:"membershipId"`
	Active       bool      `gorm:"column:active;not null" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Account) TableName() string { return "accounts" }

// Table: sessions. user_id is unique: one live session per account.
type Session struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Token       string    `gorm:"column:token;type:char(32);not null;uniqueIndex:ux_sessions_token" json:"token"`
	UserID      uint64    `gorm:"column:user_id;not null;uniqueIndex:ux_sessions_user" json:"userid"`
	AccountType Type      `gorm:"column:account_type;size:16;not null" json:"accountType"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null" json:"expiresAt"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) Expired(now time.Time) bool { return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) }

type Filter struct {
	AccountType Type
}
