package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/adapter/broker"
	"github.com/polkiloo/restaurant/internal/adapter/mailer"
	"github.com/polkiloo/restaurant/internal/app"
	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/logger"
	"github.com/polkiloo/restaurant/internal/pkg/auth"
	"github.com/polkiloo/restaurant/internal/server/http/handlers"
	"github.com/polkiloo/restaurant/internal/server/http/router"
	"github.com/polkiloo/restaurant/internal/storage/postgres"
	"github.com/polkiloo/restaurant/internal/telemetry"
	"github.com/polkiloo/restaurant/internal/usecase"
	"github.com/polkiloo/restaurant/internal/worker"
)

// Module composes the whole application graph; opts are appended last so
// callers can replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		telemetry.Module,
		auth.Module,
		postgres.Module,
		mailer.Module,
		broker.Module,
		worker.Module,
		usecase.Module,
		fx.Provide(func(f *app.RestaurantFacade) handlers.RestaurantFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
