package decision

// Decision is the review outcome of a membership application or a requirement.
type Decision string

const (
	Pending  Decision = "pending"
	Approved Decision = "approved"
	Rejected Decision = "rejected"
)

func (d Decision) Valid() bool {
	switch d {
	case Pending, Approved, Rejected:
		return true
	}
	return false
}

// Accepted mirrors the legacy tri-state field: nil while pending.
func (d Decision) Accepted() *bool {
	switch d {
	case Approved:
		t := true
		return &t
	case Rejected:
		f := false
		return &f
	}
	return nil
}
