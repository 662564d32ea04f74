package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// PaymentRepository stores settlement records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
}
