package feedback

import domainFeedback "vms-backend/internal/domain/feedback"

type CreateInput struct {
	Message string `json:"message" validate:"required"`
}

type UpdateInput struct {
	Message *string               `json:"message"`
	State   *domainFeedback.State `json:"state" validate:"omitempty,oneof=editing submitted resolved"`
}
