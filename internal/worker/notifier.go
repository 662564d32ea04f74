package worker

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/usecase"
)

// Mailer delivers account verification messages.
type Mailer interface {
	SendVerification(ctx context.Context, user model.User, token string) error
}

// EventPublisher announces order status changes.
type EventPublisher interface {
	PublishOrderStatus(ctx context.Context, order model.Order) error
}

// Notifier turns use case notifications into background jobs.
type Notifier struct {
	dispatcher *Dispatcher
	mailer     Mailer
	publisher  EventPublisher
}

var _ usecase.Notifier = (*Notifier)(nil)

// NewNotifier constructs Notifier.
func NewNotifier(dispatcher *Dispatcher, mailer Mailer, publisher EventPublisher) *Notifier {
	return &Notifier{dispatcher: dispatcher, mailer: mailer, publisher: publisher}
}

// VerificationRequested queues the verification mail for user.
func (n *Notifier) VerificationRequested(ctx context.Context, user model.User, token string) {
	span := trace.SpanContextFromContext(ctx)
	n.dispatcher.Submit(Job{
		Name: "verification_mail",
		Run: func(jobCtx context.Context) error {
			return n.mailer.SendVerification(trace.ContextWithSpanContext(jobCtx, span), user, token)
		},
	})
}

// OrderStatusChanged queues an order status event.
func (n *Notifier) OrderStatusChanged(ctx context.Context, order model.Order) {
	span := trace.SpanContextFromContext(ctx)
	n.dispatcher.Submit(Job{
		Name: "order_status_event",
		Run: func(jobCtx context.Context) error {
			return n.publisher.PublishOrderStatus(trace.ContextWithSpanContext(jobCtx, span), order)
		},
	})
}
