package event

import "context"

type Repository interface {
	Create(ctx context.Context, e *Event) error
	Save(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*Event, error)
	List(ctx context.Context, f Filter) ([]Event, error)
}

type SignatoriesRepository interface {
	Create(ctx context.Context, s *Signatories) error
	Save(ctx context.Context, s *Signatories) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*Signatories, error)
}
