package auth

import (
	"time"

	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/membership"
)

type LoginInput struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type SessionDTO struct {
	Token       string       `json:"token"`
	UserID      uint64       `json:"userid"`
	Username    string       `json:"username"`
	AccountType account.Type `json:"accountType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// LoginResult carries the linked membership profile for member accounts.
type LoginResult struct {
	Session    SessionDTO             `json:"session"`
	MemberData *membership.Membership `json:"memberData,omitempty"`
}
