package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// StatsRepository runs aggregate queries for the manager dashboard.
type StatsRepository interface {
	Revenue(ctx context.Context) (int64, error)
	PaidOrders(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	TopDishes(ctx context.Context, limit int) ([]model.DishPopularity, error)
	RevenueByDay(ctx context.Context, days int) ([]model.DailyRevenue, error)
}
