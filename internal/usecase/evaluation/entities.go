package evaluation

import (
	"encoding/json"

	domainEvaluation "vms-backend/internal/domain/evaluation"
)

type SubmitInput struct {
	Criteria        json.RawMessage `json:"criteria"`
	Q13             string          `json:"q13" validate:"max=16"`
	Q14             string          `json:"q14" validate:"max=16"`
	Comment         string          `json:"comment"`
	Recommendations string          `json:"recommendations"`
}

// View is an evaluation with its derived attendance flag.
type View struct {
	domainEvaluation.Evaluation

	Attended bool `json:"attended"`
}

func toView(e *domainEvaluation.Evaluation) View {
	return View{Evaluation: *e, Attended: e.Attended()}
}
