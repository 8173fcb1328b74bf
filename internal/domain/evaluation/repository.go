package evaluation

import "context"

type Repository interface {
	Create(ctx context.Context, e *Evaluation) error
	Save(ctx context.Context, e *Evaluation) error
	GetByID(ctx context.Context, id uint64) (*Evaluation, error)
	GetByRequirementID(ctx context.Context, requirementID string) (*Evaluation, error)
	List(ctx context.Context, f Filter) ([]Evaluation, error)
	DeleteByRequirementIDs(ctx context.Context, ids []string) error
}
