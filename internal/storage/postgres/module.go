package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// Module opens the restaurant database and exposes its repositories.
var Module = fx.Options(
	fx.Provide(newStorage, exposeRepositories),
	fx.Invoke(closeOnStop),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

// repositories lists what use cases consume directly; orders, payments and
// reservations are only reached through Factory so they can join transactions.
type repositories struct {
	fx.Out

	Factory repository.Factory
	Users   repository.UserRepository
	Tables  repository.TableRepository
	Catalog repository.CatalogRepository
	Reviews repository.ReviewRepository
	Stats   repository.StatsRepository
}

func exposeRepositories(s *Storage) repositories {
	return repositories{
		Factory: s,
		Users:   s.Users(),
		Tables:  s.Tables(),
		Catalog: s.Catalog(),
		Reviews: s.Reviews(),
		Stats:   s.Stats(),
	}
}

func closeOnStop(lc fx.Lifecycle, s *Storage, logger *slog.Logger) {
	lc.Append(fx.StopHook(func() {
		s.Close()
		logger.Info("database pool closed")
	}))
}
