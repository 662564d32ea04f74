package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

const tableColumns = `id, number, capacity, status, qr_code`

func scanTable(row pgx.Row) (model.Table, error) {
	var t model.Table
	err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Status, &t.QRCode)
	return t, err
}

func (r *tableRepository) Create(ctx context.Context, table *model.Table) (*model.Table, error) {
	const query = `INSERT INTO restaurant_tables (number, capacity, status, qr_code)
                   VALUES ($1, $2, $3, $4) RETURNING id`
	created := *table
	if err := r.storage.db().QueryRow(ctx, query, table.Number, table.Capacity, table.Status, table.QRCode).Scan(&created.ID); err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *tableRepository) GetByID(ctx context.Context, id int64) (*model.Table, error) {
	t, err := scanTable(r.storage.db().QueryRow(ctx, `SELECT `+tableColumns+` FROM restaurant_tables WHERE id=$1`, id))
	if err != nil {
		return nil, mapRowError(err, "table", id)
	}
	return &t, nil
}

func (r *tableRepository) GetByNumber(ctx context.Context, number int) (*model.Table, error) {
	t, err := scanTable(r.storage.db().QueryRow(ctx, `SELECT `+tableColumns+` FROM restaurant_tables WHERE number=$1`, number))
	if err != nil {
		return nil, mapRowError(err, "table number", int64(number))
	}
	return &t, nil
}

func (r *tableRepository) GetByQRCode(ctx context.Context, code string) (*model.Table, error) {
	t, err := scanTable(r.storage.db().QueryRow(ctx, `SELECT `+tableColumns+` FROM restaurant_tables WHERE qr_code=$1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *tableRepository) List(ctx context.Context) ([]model.Table, error) {
	rows, err := r.storage.db().Query(ctx, `SELECT `+tableColumns+` FROM restaurant_tables ORDER BY number`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.Table, error) { return scanTable(rows) })
}

func (r *tableRepository) Update(ctx context.Context, table *model.Table) error {
	const query = `UPDATE restaurant_tables SET number=$1, capacity=$2, status=$3, qr_code=$4 WHERE id=$5`
	tag, err := r.storage.db().Exec(ctx, query, table.Number, table.Capacity, table.Status, table.QRCode, table.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(tag, "table", table.ID)
}

func (r *tableRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM restaurant_tables WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "table", id)
}
