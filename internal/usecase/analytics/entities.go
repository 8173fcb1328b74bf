package analytics

import (
	"context"
	"time"

	domainAnalytics "vms-backend/internal/domain/analytics"
)

// Cache stores serialized results between rebuilds. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Flush(ctx context.Context) error
}

type Logger interface {
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...interface{}) {}

type SemesterScore struct {
	Semester         string                       `json:"semester"`
	Label            string                       `json:"label"`
	Year             int                          `json:"year"`
	Number           int                          `json:"semesterNumber"`
	Score            float64                      `json:"score"`
	Volunteers       float64                      `json:"volunteers"`
	Beneficiaries    float64                      `json:"beneficiaries"`
	TotalEvaluations int                          `json:"totalEvaluations"`
	EventIDs         []uint64                     `json:"eventIds"`
	TopIssues        []domainAnalytics.IssueCount `json:"topIssues"`
}

type EventSatisfaction struct {
	EventID          uint64                       `json:"eventId"`
	Score            float64                      `json:"score"`
	Volunteers       float64                      `json:"volunteers"`
	Beneficiaries    float64                      `json:"beneficiaries"`
	TotalEvaluations int                          `json:"totalEvaluations"`
	Respondents      map[string]int               `json:"respondents"`
	Distribution     map[int]int                  `json:"distribution"`
	TopIssues        []domainAnalytics.IssueCount `json:"topIssues"`
}

type VolunteerRisk struct {
	Email              string                    `json:"email"`
	Name               string                    `json:"name"`
	MembershipID       *uint64                   `json:"membershipId"`
	EventsJoined       int                       `json:"eventsJoined"`
	EventsAttended     int                       `json:"eventsAttended"`
	AttendanceRate     float64                   `json:"attendanceRate"`
	LastEventDate      *int64                    `json:"lastEventDate"`
	DaysSinceLastEvent *int                      `json:"daysSinceLastEvent"`
	SemestersActive    int                       `json:"semestersActive"`
	RiskScore          int                       `json:"riskScore"`
	RiskLevel          domainAnalytics.RiskLevel `json:"riskLevel"`
	Reasons            []string                  `json:"reasons"`
}

type SemesterDropout struct {
	Semester          string  `json:"semester"`
	Label             string  `json:"label"`
	TotalVolunteers   int     `json:"totalVolunteers"`
	ActiveVolunteers  int     `json:"activeVolunteers"`
	AtRiskVolunteers  int     `json:"atRiskVolunteers"`
	EventsJoined      int     `json:"eventsJoined"`
	EventsAttended    int     `json:"eventsAttended"`
	EventsDropped     int     `json:"eventsDropped"`
	DropoutRate       float64 `json:"dropoutRate"`
	AverageAttendance float64 `json:"averageAttendance"`
}

type DropoutReport struct {
	SemesterData     []SemesterDropout `json:"semesterData"`
	AtRiskVolunteers []VolunteerRisk   `json:"atRiskVolunteers"`
	TotalVolunteers  int               `json:"totalVolunteers"`
	HighRisk         int               `json:"highRisk"`
	MediumRisk       int               `json:"mediumRisk"`
	LowRisk          int               `json:"lowRisk"`
}

type SemesterSuccess struct {
	Semester       string  `json:"semester"`
	Label          string  `json:"label"`
	Events         int     `json:"events"`
	Accepted       int     `json:"accepted"`
	Volunteers     int     `json:"volunteers"`
	Attended       int     `json:"attended"`
	AttendanceRate float64 `json:"attendanceRate"`
}

type EventSuccess struct {
	Semester            string            `json:"semester,omitempty"`
	TotalEvents         int               `json:"totalEvents"`
	Internal            int               `json:"internal"`
	External            int               `json:"external"`
	Editing             int               `json:"editing"`
	Submitted           int               `json:"submitted"`
	Accepted            int               `json:"accepted"`
	Rejected            int               `json:"rejected"`
	Public              int               `json:"public"`
	SuccessRate         float64           `json:"successRate"`
	TotalVolunteers     int               `json:"totalVolunteers"`
	AverageAttendance   float64           `json:"averageAttendance"`
	AverageSatisfaction float64           `json:"averageSatisfaction"`
	BySemester          []SemesterSuccess `json:"bySemester"`
}

type Insight struct {
	Category string  `json:"category"`
	Priority string  `json:"priority"`
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	Metric   float64 `json:"metric"`
}

type Insights struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Insights    []Insight `json:"insights"`
}

type SemesterParticipation struct {
	Semester          string  `json:"semester"`
	Label             string  `json:"label"`
	Volunteers        int     `json:"volunteers"`
	EventsJoined      int     `json:"eventsJoined"`
	EventsAttended    int     `json:"eventsAttended"`
	AverageAttendance float64 `json:"averageAttendance"`
}

type ParticipationSummary struct {
	TotalVolunteers   int                     `json:"totalVolunteers"`
	TotalRecords      int                     `json:"totalRecords"`
	AverageAttendance float64                 `json:"averageAttendance"`
	Engagement        map[string]int          `json:"engagement"`
	Consistency       map[string]int          `json:"consistency"`
	BySemester        []SemesterParticipation `json:"bySemester"`
	Derived           bool                    `json:"derived"`
}

// Overview bundles every dashboard analytic in one response.
type Overview struct {
	EventSuccess         *EventSuccess         `json:"eventSuccess"`
	Dropout              *DropoutReport        `json:"dropout"`
	Satisfaction         []SemesterScore       `json:"satisfaction"`
	Insights             *Insights             `json:"insights"`
	ParticipationSummary *ParticipationSummary `json:"participationSummary"`
}

// MaintenanceResult counts the rows a dev operation removed.
type MaintenanceResult struct {
	Deleted int64 `json:"deleted"`
}
