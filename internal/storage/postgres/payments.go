package postgres

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	const query = `INSERT INTO payments (order_id, amount, method, status, reference)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, paid_at`
	created := *p
	err := r.storage.db().QueryRow(ctx, query, p.OrderID, p.Amount, p.Method, p.Status, p.Reference).
		Scan(&created.ID, &created.PaidAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	const query = `SELECT id, order_id, amount, method, status, reference, paid_at FROM payments WHERE order_id=$1`
	var p model.Payment
	err := r.storage.db().QueryRow(ctx, query, orderID).
		Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.Reference, &p.PaidAt)
	if err != nil {
		return nil, mapRowError(err, "payment for order", orderID)
	}
	return &p, nil
}
