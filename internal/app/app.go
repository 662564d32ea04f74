package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/worker"
)

// Module assembles the restaurant facade and serves it over HTTP.
var Module = fx.Options(
	fx.Provide(NewRestaurantFacade, newHTTPServer),
	fx.Invoke(registerLifecycle),
)

const readHeaderTimeout = 5 * time.Second

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.Dispatcher
	Config     *config.Config
}

// runner owns the listener and the notification workers of one process.
type runner struct {
	server     *http.Server
	dispatcher *worker.Dispatcher
	shutdowner fx.Shutdowner
	logger     *slog.Logger
	grace      time.Duration
}

func registerLifecycle(p lifecycleParams) {
	r := &runner{
		server:     p.Server,
		dispatcher: p.Dispatcher,
		shutdowner: p.Shutdowner,
		logger:     p.Logger,
		grace:      p.Config.ShutdownTimeout,
	}
	p.Lifecycle.Append(fx.Hook{OnStart: r.start, OnStop: r.stop})
}

func (r *runner) start(ctx context.Context) error {
	r.dispatcher.Start(ctx)
	r.logger.Info("restaurant listening", slog.String("addr", r.server.Addr))
	go r.serve()
	return nil
}

func (r *runner) serve() {
	err := r.server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	r.logger.Error("http server terminated", slog.String("error", err.Error()))
	if err := r.shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
		r.logger.Warn("shutdown request rejected", slog.String("error", err.Error()))
	}
}

func (r *runner) stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok && r.grace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.grace)
		defer cancel()
	}

	err := r.server.Shutdown(ctx)
	// Drained after the listener so late handlers can still enqueue mail.
	r.dispatcher.Stop()
	if err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	r.logger.Info("restaurant stopped")
	return nil
}
