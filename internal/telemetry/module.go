package telemetry

import (
	"context"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
)

// Module installs the global tracer provider and flushes it on stop.
var Module = fx.Options(
	fx.Provide(newProvider),
	fx.Provide(func(tp *sdktrace.TracerProvider) trace.TracerProvider { return tp }),
)

type providerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newProvider(p providerParams) (*sdktrace.TracerProvider, error) {
	tp, err := NewTracerProvider(p.Config.JaegerEndpoint)
	if err != nil {
		return nil, err
	}
	Install(tp)
	if p.Config.JaegerEndpoint != "" {
		p.Logger.Info("tracing enabled", slog.String("endpoint", p.Config.JaegerEndpoint))
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error { return Shutdown(ctx, tp, p.Logger) },
	})
	return tp, nil
}
