package evaluation

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Table: evaluations. One row per requirement; created empty as a template
// when the requirement is accepted and filled on submit.
type Evaluation struct {
	ID              uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RequirementID   string         `gorm:"column:requirement_id;size:64;not null;uniqueIndex:ux_evaluations_requirement" json:"requirementId"`
	Criteria        datatypes.JSON `gorm:"column:criteria" json:"criteria"`
	Q13             string         `gorm:"column:q13;size:16" json:"q13"`
	Q14             string         `gorm:"column:q14;size:16" json:"q14"`
	Comment         string         `gorm:"column:comment;type:text" json:"comment"`
	Recommendations string         `gorm:"column:recommendations;type:text" json:"recommendations"`
	Finalized       bool           `gorm:"column:finalized;not null;default:false" json:"finalized"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Evaluation) TableName() string { return "evaluations" }

// Attended is the participation predicate used by every analytic:
// the evaluation was finalized with non-empty criteria.
func (e *Evaluation) Attended() bool {
	return e.Finalized && strings.TrimSpace(string(e.Criteria)) != ""
}

type Filter struct {
	RequirementIDs []string
	FinalizedOnly  bool
}
