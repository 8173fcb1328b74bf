package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	Save(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByMembershipID(ctx context.Context, membershipID uint64) (*Account, error)
	List(ctx context.Context, f Filter) ([]Account, error)
	SetActiveByMembershipID(ctx context.Context, membershipID uint64, active bool) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uint64) error
}
