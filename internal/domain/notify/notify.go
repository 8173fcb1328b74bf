package notify

import "time"

// Template names understood by the mailer.
const (
	TemplatePending             = "pending"
	TemplateApproved            = "approved"
	TemplateRejected            = "rejected"
	TemplateRequirementAccepted = "requirement_accepted"
	TemplateEvaluationReminder  = "evaluation_reminder"
)

type Message struct {
	To       string
	ToName   string
	Subject  string
	Template string
	Data     map[string]any
}

// Mailer delivers messages in the background. Callers never see delivery
// errors.
type Mailer interface {
	Enqueue(msg Message)
	EnqueueAt(at time.Time, msg Message)
}
