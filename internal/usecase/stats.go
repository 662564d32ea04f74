package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

const (
	defaultTopDishes   = 5
	revenueHistoryDays = 7
)

// StatsUseCase aggregates manager dashboards.
type StatsUseCase struct {
	stats repository.StatsRepository
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(stats repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{stats: stats}
}

// Global runs the revenue, paid order and rating queries concurrently.
func (u *StatsUseCase) Global(ctx context.Context) (*model.GlobalStats, error) {
	var out model.GlobalStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Revenue, err = u.stats.Revenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.PaidOrders, err = u.stats.PaidOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.AverageRating, err = u.stats.AverageRating(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopDishes ranks dishes by quantity sold on paid orders.
func (u *StatsUseCase) TopDishes(ctx context.Context, limit int) ([]model.DishPopularity, error) {
	if limit <= 0 {
		limit = defaultTopDishes
	}
	return u.stats.TopDishes(ctx, limit)
}

// RevenueByDay returns the latest days with revenue, newest first.
func (u *StatsUseCase) RevenueByDay(ctx context.Context) ([]model.DailyRevenue, error) {
	return u.stats.RevenueByDay(ctx, revenueHistoryDays)
}

// Dashboard computes every statistic concurrently.
func (u *StatsUseCase) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var out model.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		global, err := u.Global(gctx)
		if err == nil {
			out.Global = *global
		}
		return err
	})
	g.Go(func() (err error) {
		out.TopDishes, err = u.TopDishes(gctx, defaultTopDishes)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = u.RevenueByDay(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
