package membership

import "context"

type Repository interface {
	Create(ctx context.Context, m *Membership) error
	Save(ctx context.Context, m *Membership) error
	GetByID(ctx context.Context, id uint64) (*Membership, error)
	GetByEmail(ctx context.Context, email string) (*Membership, error)
	List(ctx context.Context, f Filter) ([]Membership, error)

	// Collisions returns which of username, email and srcode are already taken.
	Collisions(ctx context.Context, username, email, srcode string) ([]string, error)
}
