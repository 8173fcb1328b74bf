package event

type Status string

const (
	StatusEditing   Status = "editing"
	StatusSubmitted Status = "submitted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

type Action string

const (
	ActionSubmit     Action = "submit"
	ActionAccept     Action = "accept"
	ActionReject     Action = "reject"
	ActionMakePublic Action = "to-public"
)

// transitions lists the only legal status edges; to-public is handled apart
// because it flips ToPublic without moving the status.
var transitions = map[Status]map[Action]Status{
	StatusEditing:   {ActionSubmit: StatusSubmitted},
	StatusSubmitted: {ActionAccept: StatusAccepted, ActionReject: StatusRejected},
}

func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionSubmit, ActionAccept, ActionReject, ActionMakePublic:
		return a, true
	}
	return "", false
}

// Apply moves e through the review state machine.
func (e *Event) Apply(a Action) error {
	if a == ActionMakePublic {
		if e.Status != StatusAccepted {
			return ErrInvalidTransition
		}
		e.ToPublic = true
		return nil
	}
	next, ok := transitions[e.Status][a]
	if !ok {
		return ErrInvalidTransition
	}
	e.Status = next
	return nil
}

// Public reports whether the event is listed on the public page.
func (e *Event) Public() bool { return e.Status == StatusAccepted && e.ToPublic }
