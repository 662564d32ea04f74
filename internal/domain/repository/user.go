package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}
