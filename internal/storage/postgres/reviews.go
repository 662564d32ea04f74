package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

const reviewColumns = `id, client_id, order_id, rating, comment, created_at`

func scanReview(row pgx.Row) (model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.ClientID, &rv.OrderID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	return rv, err
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	const query = `INSERT INTO reviews (client_id, order_id, rating, comment)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	created := *review
	err := r.storage.db().QueryRow(ctx, query, review.ClientID, review.OrderID, review.Rating, review.Comment).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	rv, err := scanReview(r.storage.db().QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id=$1`, id))
	if err != nil {
		return nil, mapRowError(err, "review", id)
	}
	return &rv, nil
}

func (r *reviewRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Review, error) {
	rv, err := scanReview(r.storage.db().QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE order_id=$1`, orderID))
	if err != nil {
		return nil, mapRowError(err, "review for order", orderID)
	}
	return &rv, nil
}

func (r *reviewRepository) List(ctx context.Context, orderID *int64, limit, offset int) ([]model.Review, error) {
	b := psql.Select(reviewColumns).From("reviews").OrderBy("created_at DESC", "id DESC")
	if orderID != nil {
		b = b.Where(sq.Eq{"order_id": *orderID})
	}
	query, args, err := paginate(b, limit, offset).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.db().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.Review, error) { return scanReview(rows) })
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	tag, err := r.storage.db().Exec(ctx, `UPDATE reviews SET rating=$1, comment=$2 WHERE id=$3`,
		review.Rating, review.Comment, review.ID)
	if err != nil {
		return err
	}
	return expectAffected(tag, "review", review.ID)
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "review", id)
}
