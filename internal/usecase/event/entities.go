package event

import (
	"vms-backend/internal/domain/analytics"
	domainEvent "vms-backend/internal/domain/event"
)

// Input carries every editable field of an event. Update replaces them all.
type Input struct {
	Title              string                       `json:"title" validate:"required,max=255"`
	DurationStart      *int64                       `json:"durationStart" validate:"omitempty,gt=0"`
	DurationEnd        *int64                       `json:"durationEnd" validate:"omitempty,gt=0"`
	Venue              string                       `json:"venue" validate:"max=255"`
	Description        string                       `json:"description"`
	Objectives         string                       `json:"objectives"`
	OrganizedBy        string                       `json:"organizedBy" validate:"max=255"`
	EvaluationSendTime *int64                       `json:"evaluationSendTime" validate:"omitempty,gt=0"`
	Internal           *domainEvent.InternalDetails `json:"internal"`
	External           *domainEvent.ExternalDetails `json:"external"`
}

type SignatoriesInput struct {
	PreparedBy                 string `json:"preparedBy" validate:"max=160"`
	PreparedByTitle            string `json:"preparedByTitle" validate:"max=160"`
	ReviewedBy                 string `json:"reviewedBy" validate:"max=160"`
	ReviewedByTitle            string `json:"reviewedByTitle" validate:"max=160"`
	RecommendingApproval1      string `json:"recommendingApproval1" validate:"max=160"`
	RecommendingApproval1Title string `json:"recommendingApproval1Title" validate:"max=160"`
	RecommendingApproval2      string `json:"recommendingApproval2" validate:"max=160"`
	RecommendingApproval2Title string `json:"recommendingApproval2Title" validate:"max=160"`
	ApprovedBy                 string `json:"approvedBy" validate:"max=160"`
	ApprovedByTitle            string `json:"approvedByTitle" validate:"max=160"`
}

type RequirementCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// Analysis summarizes sign-ups and evaluations of one event.
type Analysis struct {
	EventID                 uint64                 `json:"eventId"`
	EventType               domainEvent.Kind       `json:"eventType"`
	Title                   string                 `json:"title"`
	Status                  domainEvent.Status     `json:"status"`
	Requirements            RequirementCounts      `json:"requirements"`
	Evaluations             int                    `json:"evaluations"`
	Finalized               int                    `json:"finalized"`
	Attended                int                    `json:"attended"`
	AttendanceRate          float64                `json:"attendanceRate"`
	AverageSatisfaction     float64                `json:"averageSatisfaction"`
	AverageVolunteerScore   float64                `json:"averageVolunteerScore"`
	AverageBeneficiaryScore float64                `json:"averageBeneficiaryScore"`
	CriteriaAverages        map[string]float64     `json:"criteriaAverages"`
	Recommendations         []string               `json:"recommendations"`
	TopIssues               []analytics.IssueCount `json:"topIssues"`
}
