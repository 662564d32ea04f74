package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// TableRepository describes persistence operations for restaurant tables.
type TableRepository interface {
	Create(ctx context.Context, table *model.Table) (*model.Table, error)
	GetByID(ctx context.Context, id int64) (*model.Table, error)
	GetByNumber(ctx context.Context, number int) (*model.Table, error)
	GetByQRCode(ctx context.Context, code string) (*model.Table, error)
	List(ctx context.Context) ([]model.Table, error)
	Update(ctx context.Context, table *model.Table) error
	Delete(ctx context.Context, id int64) error
}
