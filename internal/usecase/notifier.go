package usecase

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// Notifier receives fire-and-forget side effects of use cases.
type Notifier interface {
	VerificationRequested(ctx context.Context, user model.User, token string)
	OrderStatusChanged(ctx context.Context, order model.Order)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) VerificationRequested(context.Context, model.User, string) {}
func (NopNotifier) OrderStatusChanged(context.Context, model.Order)           {}
