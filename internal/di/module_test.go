package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/app"
	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	"github.com/polkiloo/restaurant/internal/storage/postgres"
	"github.com/polkiloo/restaurant/internal/test"
	"github.com/polkiloo/restaurant/internal/worker"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		JWTSecret:         "secret",
		TokenTTL:          time.Hour,
		WorkerPoolSize:    1,
		DispatchQueueSize: 4,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewMemoryStore()

	var (
		facade     *app.RestaurantFacade
		engine     *gin.Engine
		dispatcher *worker.Dispatcher
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(
				fx.Annotate(store, fx.As(new(repository.Factory))),
				fx.Annotate(store.Users(), fx.As(new(repository.UserRepository))),
				fx.Annotate(store.Tables(), fx.As(new(repository.TableRepository))),
				fx.Annotate(store.Catalog(), fx.As(new(repository.CatalogRepository))),
				fx.Annotate(store.Reviews(), fx.As(new(repository.ReviewRepository))),
				fx.Annotate(store.Stats(), fx.As(new(repository.StatsRepository))),
			),
		),
		fx.Populate(&facade, &engine, &dispatcher),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || engine == nil || dispatcher == nil {
		t.Fatal("expected facade, router and dispatcher instances")
	}

	if _, err := facade.CreateTable(context.Background(), 1, 4); err != nil {
		t.Fatalf("expected facade to use the replaced store: %v", err)
	}
	if tables, _ := store.Tables().List(context.Background()); len(tables) != 1 {
		t.Fatalf("expected table in memory store, got %d", len(tables))
	}

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected health endpoint to answer, got %d", resp.Code)
	}
}
