package broker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/worker"
)

// Module exposes the order event publisher to fx graph.
var Module = fx.Provide(
	newPublisher,
	func(p Publisher) worker.EventPublisher { return p },
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.AMQPURL == "" {
		return NewLogPublisher(p.Logger), nil
	}
	pub, err := Dial(p.Config.AMQPURL, p.Config.EventsExchange, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error { return pub.Close() },
	})
	return pub, nil
}
