package analytics

import (
	"time"

	"gorm.io/datatypes"

	"vms-backend/internal/domain/event"
)

type RespondentType string

const (
	RespondentVolunteer   RespondentType = "Volunteer"
	RespondentBeneficiary RespondentType = "Beneficiary"
	RespondentBoth        RespondentType = "Both"
)

type EngagementLevel string

const (
	EngagementActive   EngagementLevel = "Active"
	EngagementModerate EngagementLevel = "Moderate"
	EngagementAtRisk   EngagementLevel = "At Risk"
	EngagementInactive EngagementLevel = "Inactive"
)

type Consistency string

const (
	ConsistencyRegular   Consistency = "Regular"
	ConsistencyIrregular Consistency = "Irregular"
	ConsistencyLow       Consistency = "Low"
	ConsistencyNone      Consistency = "No Participation"
)

// Table: satisfaction_surveys, derived from finalized evaluations.
type SatisfactionSurvey struct {
	ID                  uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventID             uint64         `gorm:"column:event_id;not null;index" json:"eventId"`
	EventKind           event.Kind     `gorm:"column:event_kind;size:16;not null" json:"eventType"`
	RequirementID       string         `gorm:"column:requirement_id;size:64;not null;uniqueIndex:ux_surveys_respondent" json:"requirementId"`
	RespondentEmail     string         `gorm:"column:respondent_email;size:160;not null;uniqueIndex:ux_surveys_respondent" json:"respondentEmail"`
	RespondentName      string         `gorm:"column:respondent_name;size:160" json:"respondentName"`
	RespondentType      RespondentType `gorm:"column:respondent_type;size:16;not null" json:"respondentType"`
	OverallSatisfaction float64        `gorm:"column:overall_satisfaction" json:"overallSatisfaction"`
	VolunteerScore      float64        `gorm:"column:volunteer_score" json:"volunteerScore"`
	BeneficiaryScore    float64        `gorm:"column:beneficiary_score" json:"beneficiaryScore"`
	Organization        float64        `gorm:"column:organization_rating" json:"organizationRating"`
	Communication       float64        `gorm:"column:communication_rating" json:"communicationRating"`
	Venue               float64        `gorm:"column:venue_rating" json:"venueRating"`
	Materials           float64        `gorm:"column:materials_rating" json:"materialsRating"`
	Support             float64        `gorm:"column:support_rating" json:"supportRating"`
	Feedback            string         `gorm:"column:feedback;type:text" json:"feedback"`
	SubmittedAt         int64          `gorm:"column:submitted_at;not null;index" json:"submittedAt"`
	Finalized           bool           `gorm:"column:finalized;not null;default:true" json:"finalized"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SatisfactionSurvey) TableName() string { return "satisfaction_surveys" }

// SameContent compares the derived values, ignoring identity and timestamps.
func (s *SatisfactionSurvey) SameContent(o *SatisfactionSurvey) bool {
	return s.EventID == o.EventID && s.EventKind == o.EventKind &&
		s.RequirementID == o.RequirementID && s.RespondentEmail == o.RespondentEmail &&
		s.RespondentName == o.RespondentName && s.RespondentType == o.RespondentType &&
		s.OverallSatisfaction == o.OverallSatisfaction &&
		s.VolunteerScore == o.VolunteerScore && s.BeneficiaryScore == o.BeneficiaryScore &&
		s.Organization == o.Organization && s.Communication == o.Communication &&
		s.Venue == o.Venue && s.Materials == o.Materials && s.Support == o.Support &&
		s.Feedback == o.Feedback && s.SubmittedAt == o.SubmittedAt && s.Finalized == o.Finalized
}

// Table: volunteer_participation_history, one row per (volunteer, semester).
type ParticipationHistory struct {
	ID                       uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VolunteerEmail           string          `gorm:"column:volunteer_email;size:160;not null;uniqueIndex:ux_history_volunteer_semester" json:"volunteerEmail"`
	VolunteerName            string          `gorm:"column:volunteer_name;size:160" json:"volunteerName"`
	MembershipID             *uint64         `gorm:"column:membership_id" json:"membershipId"`
	Semester                 string          `gorm:"column:semester;size:8;not null;uniqueIndex:ux_history_volunteer_semester" json:"semester"`
	SemesterYear             int             `gorm:"column:semester_year;not null" json:"semesterYear"`
	SemesterNumber           int             `gorm:"column:semester_number;not null" json:"semesterNumber"`
	EventsJoined             int             `gorm:"column:events_joined;not null" json:"eventsJoined"`
	EventsAttended           int             `gorm:"column:events_attended;not null" json:"eventsAttended"`
	EventsDropped            int             `gorm:"column:events_dropped;not null" json:"eventsDropped"`
	AttendanceRate           float64         `gorm:"column:attendance_rate;not null" json:"attendanceRate"`
	FirstEventDate           *int64          `gorm:"column:first_event_date" json:"firstEventDate"`
	LastEventDate            *int64          `gorm:"column:last_event_date" json:"lastEventDate"`
	DaysActiveInSemester     int             `gorm:"column:days_active_in_semester" json:"daysActiveInSemester"`
	ParticipationConsistency Consistency     `gorm:"column:participation_consistency;size:24" json:"participationConsistency"`
	EngagementLevel          EngagementLevel `gorm:"column:engagement_level;size:16" json:"engagementLevel"`
	CalculatedAt             time.Time       `gorm:"column:calculated_at" json:"calculatedAt"`
	LastUpdated              time.Time       `gorm:"column:last_updated;autoUpdateTime" json:"lastUpdated"`
}

func (ParticipationHistory) TableName() string { return "volunteer_participation_history" }

func (h *ParticipationHistory) SameContent(o *ParticipationHistory) bool {
	return h.VolunteerEmail == o.VolunteerEmail && h.VolunteerName == o.VolunteerName &&
		eqUint(h.MembershipID, o.MembershipID) && h.Semester == o.Semester &&
		h.EventsJoined == o.EventsJoined && h.EventsAttended == o.EventsAttended &&
		h.EventsDropped == o.EventsDropped && h.AttendanceRate == o.AttendanceRate &&
		eqInt(h.FirstEventDate, o.FirstEventDate) && eqInt(h.LastEventDate, o.LastEventDate) &&
		h.DaysActiveInSemester == o.DaysActiveInSemester &&
		h.ParticipationConsistency == o.ParticipationConsistency &&
		h.EngagementLevel == o.EngagementLevel
}

// Table: semester_satisfaction
type SemesterSatisfaction struct {
	ID               uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Year             int            `gorm:"column:year;not null;uniqueIndex:ux_semester_satisfaction" json:"year"`
	Semester         int            `gorm:"column:semester;not null;uniqueIndex:ux_semester_satisfaction" json:"semester"`
	Overall          float64        `gorm:"column:overall" json:"overall"`
	Volunteers       float64        `gorm:"column:volunteers" json:"volunteers"`
	Beneficiaries    float64        `gorm:"column:beneficiaries" json:"beneficiaries"`
	TotalEvaluations int            `gorm:"column:total_evaluations" json:"totalEvaluations"`
	EventIDs         datatypes.JSON `gorm:"column:event_ids" json:"eventIds"`
	TopIssues        datatypes.JSON `gorm:"column:top_issues" json:"topIssues"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SemesterSatisfaction) TableName() string { return "semester_satisfaction" }

type HistoryFilter struct {
	Semester string
	Email    string
}

func eqUint(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
