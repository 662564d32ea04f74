package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// OrderFilter narrows order listings; zero values disable a criterion.
type OrderFilter struct {
	ClientID *int64
	TableID  *int64
	Status   model.OrderStatus
	Limit    int
	Offset   int
}

// OrderRepository describes persistence operations with orders and their lines.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	Update(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error)
	UpdateStatus(ctx context.Context, order *model.Order) error
	SetTotal(ctx context.Context, id int64, total int64) error
	Delete(ctx context.Context, id int64) error

	AddLine(ctx context.Context, line *model.OrderLine) (*model.OrderLine, error)
	ListLines(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	SetLinesStatus(ctx context.Context, orderID int64, status string) error
}
