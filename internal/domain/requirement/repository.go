package requirement

import "context"

type Repository interface {
	Create(ctx context.Context, r *Requirement) error
	Save(ctx context.Context, r *Requirement) error
	GetByID(ctx context.Context, id string) (*Requirement, error)
	List(ctx context.Context, f Filter) ([]Requirement, error)
	DeleteByEventID(ctx context.Context, eventID uint64) error
}
