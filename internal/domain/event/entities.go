package event

import (
	"errors"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidDuration   = errors.New("durationStart must not be after durationEnd")
)

type Kind string

const (
	KindInternal Kind = "internal"
	KindExternal Kind = "external"
)

func (k Kind) Valid() bool { return k == KindInternal || k == KindExternal }

// InternalDetails holds the fields only internal (organization-run) events carry.
type InternalDetails struct {
	TargetParticipants   int    `gorm:"column:target_participants" json:"targetParticipants"`
	ActualParticipants   int    `gorm:"column:actual_participants" json:"actualParticipants"`
	WorkPlan             string `gorm:"column:work_plan;type:text" json:"workPlan"`
	FinancialRequirement string `gorm:"column:financial_requirement;type:text" json:"financialRequirement"`
	SustainabilityPlan   string `gorm:"column:sustainability_plan;type:text" json:"sustainabilityPlan"`
}

// ExternalDetails holds the fields only external (extension service) events carry.
type ExternalDetails struct {
	ExtensionServiceType string  `gorm:"column:extension_service_type;size:120" json:"extensionServiceType"`
	SDGs                 string  `gorm:"column:sdgs;type:text" json:"sdg"`
	Partners             string  `gorm:"column:partners;type:text" json:"partners"`
	Beneficiaries        string  `gorm:"column:beneficiaries;type:text" json:"beneficiaries"`
	TotalCost            float64 `gorm:"column:total_cost" json:"totalCost"`
	SourceOfFund         string  `gorm:"column:source_of_fund;size:160" json:"sourceOfFund"`
	SustainabilityPlan   string  `gorm:"column:sustainability_plan;type:text" json:"sustainabilityPlan"`
}

// Table: events. Both kinds share one table; the variant columns are
// prefixed int_ / ext_.
type Event struct {
	ID                 uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Kind               Kind    `gorm:"column:kind;size:16;not null;index" json:"eventType"`
	Title              string  `gorm:"column:title;size:255;not null" json:"title"`
	DurationStart      *int64  `gorm:"column:duration_start;index" json:"durationStart"`
	DurationEnd        *int64  `gorm:"column:duration_end" json:"durationEnd"`
	Venue              string  `gorm:"column:venue;size:255" json:"venue"`
	Description        string  `gorm:"column:description;type:text" json:"description"`
	Objectives         string  `gorm:"column:objectives;type:text" json:"objectives"`
	OrganizedBy        string  `gorm:"column:organized_by;size:255" json:"organizedBy"`
	CreatedBy          uint64  `gorm:"column:created_by;not null;index" json:"createdBy"`
	Status             Status  `gorm:"column:status;size:16;not null;default:'editing';index" json:"status"`
	ToPublic           bool    `gorm:"column:to_public;not null;default:false" json:"toPublic"`
	EvaluationSendTime *int64  `gorm:"column:evaluation_send_time" json:"evaluationSendTime"`
	SignatoriesID      uint64  `gorm:"column:signatories_id;not null;uniqueIndex:ux_events_signatories" json:"signatoriesId"`
	FeedbackID         *uint64 `gorm:"column:feedback_id" json:"feedback_id"`

	Internal InternalDetails `gorm:"embedded;embeddedPrefix:int_" json:"internal"`
	External ExternalDetails `gorm:"embedded;embeddedPrefix:ext_" json:"external"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

// StartTime returns durationStart as a time, or false when it is unset.
func (e *Event) StartTime() (time.Time, bool) {
	if e.DurationStart == nil || *e.DurationStart <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(*e.DurationStart), true
}

func (e *Event) ValidateDuration() error {
	if e.DurationStart != nil && e.DurationEnd != nil && *e.DurationStart > *e.DurationEnd {
		return ErrInvalidDuration
	}
	return nil
}

// Table: signatories. Owned by exactly one event or report.
type Signatories struct {
	ID                         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PreparedBy                 string    `gorm:"column:prepared_by;size:160" json:"preparedBy"`
	PreparedByTitle            string    `gorm:"column:prepared_by_title;size:160" json:"preparedByTitle"`
	ReviewedBy                 string    `gorm:"column:reviewed_by;size:160" json:"reviewedBy"`
	ReviewedByTitle            string    `gorm:"column:reviewed_by_title;size:160" json:"reviewedByTitle"`
	RecommendingApproval1      string    `gorm:"column:recommending_approval1;size:160" json:"recommendingApproval1"`
	RecommendingApproval1Title string    `gorm:"column:recommending_approval1_title;size:160" json:"recommendingApproval1Title"`
	RecommendingApproval2      string    `gorm:"column:recommending_approval2;size:160" json:"recommendingApproval2"`
	RecommendingApproval2Title string    `gorm:"column:recommending_approval2_title;size:160" json:"recommendingApproval2Title"`
	ApprovedBy                 string    `gorm:"column:approved_by;size:160" json:"approvedBy"`
	ApprovedByTitle            string    `gorm:"column:approved_by_title;size:160" json:"approvedByTitle"`
	CreatedAt                  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt                  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Signatories) TableName() string { return "signatories" }

// DefaultSignatories returns an empty sign-off sheet with the standard titles.
func DefaultSignatories() *Signatories {
	return &Signatories{
		PreparedByTitle:            "VOSA Officer",
		ReviewedByTitle:            "VOSA Adviser",
		RecommendingApproval1Title: "Head, Extension Services",
		RecommendingApproval2Title: "Director, Extension Services",
		ApprovedByTitle:            "Vice Chancellor for Research, Development and Extension Services",
	}
}

type Filter struct {
	Kind       Kind
	Status     Status
	PublicOnly bool
}
