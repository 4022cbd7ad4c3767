package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// UserRepository persists account records. Create returns
// domain.ErrEmailTaken when the email unique index is violated.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
