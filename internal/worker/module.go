package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/usecase"
)

// Module provides the notification dispatcher and the notifier backed by it.
var Module = fx.Provide(
	newDispatcher,
	NewNotifier,
	func(n *Notifier) usecase.Notifier { return n },
)

type dispatcherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Config.WorkerPoolSize, p.Config.DispatchQueueSize, p.Logger)
}
