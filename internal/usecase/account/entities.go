package account

import domainAccount "vms-backend/internal/domain/account"

type CreateInput struct {
	Username    string             `json:"username" validate:"required,max=64"`
	Password    string             `json:"password" validate:"required,min=4,max=72"`
	AccountType domainAccount.Type `json:"accountType" validate:"required,oneof=admin officer"`
}

// UpdateInput changes only the fields that are set.
type UpdateInput struct {
	Username    *string             `json:"username" validate:"omitempty,max=64"`
	Password    *string             `json:"password" validate:"omitempty,min=4,max=72"`
	AccountType *domainAccount.Type `json:"accountType" validate:"omitempty,oneof=admin officer member"`
	Active      *bool               `json:"active"`
}
