package auth

import (
	"context"

	"atithi/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Recorder interface {
	Record(ctx context.Context, action, details string, actorID int64)
}
