package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

func (r *statsRepository) Revenue(ctx context.Context) (int64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status=$1`
	var total int64
	err := r.storage.db().QueryRow(ctx, query, model.PaymentStatusSucceeded).Scan(&total)
	return total, err
}

func (r *statsRepository) PaidOrders(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE status=$1`
	var count int64
	err := r.storage.db().QueryRow(ctx, query, model.OrderStatusPaid).Scan(&count)
	return count, err
}

func (r *statsRepository) AverageRating(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)::float8 FROM reviews`
	var avg float64
	err := r.storage.db().QueryRow(ctx, query).Scan(&avg)
	return avg, err
}

func (r *statsRepository) TopDishes(ctx context.Context, limit int) ([]model.DishPopularity, error) {
	const query = `SELECT d.id, d.name, SUM(l.quantity) AS sold
                   FROM order_lines l
                   JOIN dishes d ON d.id = l.dish_id
                   JOIN orders o ON o.id = l.order_id
                   WHERE o.status = $1
                   GROUP BY d.id, d.name
                   ORDER BY sold DESC, d.id
                   LIMIT $2`
	rows, err := r.storage.db().Query(ctx, query, model.OrderStatusPaid, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.DishPopularity, error) {
		var p model.DishPopularity
		err := rows.Scan(&p.DishID, &p.Name, &p.Quantity)
		return p, err
	})
}

func (r *statsRepository) RevenueByDay(ctx context.Context, days int) ([]model.DailyRevenue, error) {
	const query = `SELECT TO_CHAR(DATE(paid_at), 'YYYY-MM-DD') AS day, SUM(amount)
                   FROM payments
                   WHERE status = $1
                   GROUP BY DATE(paid_at)
                   ORDER BY DATE(paid_at) DESC
                   LIMIT $2`
	rows, err := r.storage.db().Query(ctx, query, model.PaymentStatusSucceeded, days)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.DailyRevenue, error) {
		var d model.DailyRevenue
		err := rows.Scan(&d.Day, &d.Revenue)
		return d, err
	})
}
