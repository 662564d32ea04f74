package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// ReviewRepository stores order reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Review, error)
	List(ctx context.Context, orderID *int64, limit, offset int) ([]model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int64) error
}
