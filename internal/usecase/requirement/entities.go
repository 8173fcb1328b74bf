package requirement

import domainRequirement "vms-backend/internal/domain/requirement"

// CreateInput is the text part of the sign-up form. ID is optional; a uuid is
// generated when it is empty.
type CreateInput struct {
	ID string `json:"id" validate:"omitempty,max=64"`

	domainRequirement.Applicant
}
