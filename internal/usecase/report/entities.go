package report

import (
	domainEvent "vms-backend/internal/domain/event"
	domainReport "vms-backend/internal/domain/report"
)

type CreateInput struct {
	Narrative     string               `json:"narrative" validate:"required"`
	PhotoCaptions []string             `json:"photoCaptions"`
	Budget        *domainReport.Budget `json:"budget"`
}

// Analytics is the post-event scorecard shown next to a report.
type Analytics struct {
	EventID             uint64           `json:"eventId"`
	EventType           domainEvent.Kind `json:"eventType"`
	Title               string           `json:"title"`
	HasReport           bool             `json:"hasReport"`
	PhotoCount          int              `json:"photoCount"`
	Volunteers          int              `json:"volunteers"`
	Attended            int              `json:"attended"`
	AttendanceRate      float64          `json:"attendanceRate"`
	AverageSatisfaction float64          `json:"averageSatisfaction"`
	Evaluations         int              `json:"evaluations"`
	TargetParticipants  int              `json:"targetParticipants,omitempty"`
	TargetReachRate     float64          `json:"targetReachRate,omitempty"`
	BudgetUtilized      float64          `json:"budgetUtilized,omitempty"`
	PSAttribution       float64          `json:"psAttribution,omitempty"`
	TotalCost           float64          `json:"totalCost,omitempty"`
	CostPerVolunteer    float64          `json:"costPerVolunteer,omitempty"`
}
