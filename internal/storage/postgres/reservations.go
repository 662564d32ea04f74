package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

const reservationColumns = `id, client_id, table_id, reserved_at, party_size, status, notes`

func scanReservation(row pgx.Row) (model.Reservation, error) {
	var r model.Reservation
	err := row.Scan(&r.ID, &r.ClientID, &r.TableID, &r.At, &r.PartySize, &r.Status, &r.Notes)
	return r, err
}

func (r *reservationRepository) Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	const query = `INSERT INTO reservations (client_id, table_id, reserved_at, party_size, status, notes)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	created := *res
	err := r.storage.db().QueryRow(ctx, query,
		res.ClientID, res.TableID, res.At, res.PartySize, res.Status, res.Notes).Scan(&created.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := scanReservation(r.storage.db().QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id))
	if err != nil {
		return nil, mapRowError(err, "reservation", id)
	}
	return &res, nil
}

func (r *reservationRepository) List(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error) {
	b := psql.Select(reservationColumns).From("reservations").OrderBy("reserved_at", "id")
	if filter.ClientID != nil {
		b = b.Where(sq.Eq{"client_id": *filter.ClientID})
	}
	if filter.TableID != nil {
		b = b.Where(sq.Eq{"table_id": *filter.TableID})
	}
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": filter.Status})
	}
	query, args, err := paginate(b, filter.Limit, filter.Offset).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.db().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.Reservation, error) { return scanReservation(rows) })
}

func (r *reservationRepository) Update(ctx context.Context, res *model.Reservation) error {
	const query = `UPDATE reservations SET client_id=$1, table_id=$2, reserved_at=$3, party_size=$4, status=$5, notes=$6
                   WHERE id=$7`
	tag, err := r.storage.db().Exec(ctx, query,
		res.ClientID, res.TableID, res.At, res.PartySize, res.Status, res.Notes, res.ID)
	if err != nil {
		return err
	}
	return expectAffected(tag, "reservation", res.ID)
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "reservation", id)
}

func (r *reservationRepository) CountActiveBetween(ctx context.Context, tableID int64, from, to time.Time, excludeID *int64) (int, error) {
	b := psql.Select("COUNT(*)").From("reservations").
		Where(sq.Eq{"table_id": tableID}).
		Where(sq.NotEq{"status": model.ReservationStatusCancelled}).
		Where(sq.Gt{"reserved_at": from}).
		Where(sq.Lt{"reserved_at": to})
	if excludeID != nil {
		b = b.Where(sq.NotEq{"id": *excludeID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.storage.db().QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
