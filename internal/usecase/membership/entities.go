package membership

import (
	"time"

	"vms-backend/internal/domain/decision"
)

// ApplyInput is the public membership form.
type ApplyInput struct {
	Fullname         string `json:"fullname" validate:"required,max=160"`
	Email            string `json:"email" validate:"required,email,max=160"`
	SRCode           string `json:"srcode" validate:"required,max=32"`
	Age              int    `json:"age" validate:"omitempty,min=10,max=120"`
	Birthday         string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Sex              string `json:"sex" validate:"max=16"`
	Campus           string `json:"campus" validate:"max=120"`
	College          string `json:"collegeDept" validate:"max=160"`
	YearLevel        string `json:"yrlevelprogram" validate:"max=64"`
	Address          string `json:"address"`
	Contact          string `json:"contactNum" validate:"max=32"`
	Blood            string `json:"bloodType" validate:"max=8"`
	Medical          string `json:"medicalCondition"`
	Payment          string `json:"paymentOption" validate:"max=64"`
	AreasOfInterest  string `json:"areasOfInterest"`
	VolunteerHistory string `json:"volunteerHistory"`
	Motivation       string `json:"reasonForJoining"`
	Username         string `json:"username" validate:"required,max=64"`
	Password         string `json:"password" validate:"required,min=4,max=72"`
}

// StatusDTO is what an applicant may see about their own application.
type StatusDTO struct {
	Status   decision.Decision `json:"status"`
	Accepted *bool             `json:"accepted"`
	Active   bool              `json:"active"`
	Profile  Profile           `json:"profile"`
}

type Profile struct {
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	SRCode    string    `json:"srcode"`
	College   string    `json:"collegeDept"`
	YearLevel string    `json:"yrlevelprogram"`
	AppliedAt time.Time `json:"appliedAt"`
}
