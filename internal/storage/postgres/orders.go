package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

const (
	orderColumns = `id, client_id, table_id, server_id, cook_id, status, total, order_type, notes, created_at`
	lineColumns  = `id, order_id, dish_id, menu_id, quantity, unit_price, notes, status`
)

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.ClientID, &o.TableID, &o.ServerID, &o.CookID, &o.Status, &o.Total, &o.Type, &o.Notes, &o.CreatedAt)
	return o, err
}

func scanLine(row pgx.Row) (model.OrderLine, error) {
	var (
		l              model.OrderLine
		dishID, menuID *int64
	)
	if err := row.Scan(&l.ID, &l.OrderID, &dishID, &menuID, &l.Quantity, &l.UnitPrice, &l.Notes, &l.Status); err != nil {
		return l, err
	}
	target, err := model.TargetFromColumns(dishID, menuID)
	if err != nil {
		return l, err
	}
	l.Target = target
	return l, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (client_id, table_id, server_id, status, total, order_type, notes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	created := *order
	created.Lines = nil
	err := r.storage.db().QueryRow(ctx, query,
		order.ClientID, order.TableID, order.ServerID, order.Status, order.Total, order.Type, order.Notes,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	o, err := scanOrder(r.storage.db().QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, mapRowError(err, "order", id)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	b := psql.Select(orderColumns).From("orders").OrderBy("created_at DESC", "id DESC")
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
	return collect(rows, func(rows pgx.Rows) (model.Order, error) { return scanOrder(rows) })
}

func (r *orderRepository) Update(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	set := map[string]any{}
	if patch.ClientID != nil {
		set["client_id"] = *patch.ClientID
	}
	if patch.TableID != nil {
		set["table_id"] = *patch.TableID
	}
	if patch.ServerID != nil {
		set["server_id"] = *patch.ServerID
	}
	if patch.Type != nil {
		set["order_type"] = *patch.Type
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := psql.Update("orders").SetMap(set).Where(sq.Eq{"id": id}).Suffix("RETURNING " + orderColumns).ToSql()
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.storage.db().QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapRowError(err, "order", id)
	}
	return &o, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, order *model.Order) error {
	const query = `UPDATE orders SET status=$1, server_id=$2, cook_id=$3 WHERE id=$4`
	tag, err := r.storage.db().Exec(ctx, query, order.Status, order.ServerID, order.CookID, order.ID)
	if err != nil {
		return err
	}
	return expectAffected(tag, "order", order.ID)
}

func (r *orderRepository) SetTotal(ctx context.Context, id int64, total int64) error {
	tag, err := r.storage.db().Exec(ctx, `UPDATE orders SET total=$1 WHERE id=$2`, total, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "order", id)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "order", id)
}

func (r *orderRepository) AddLine(ctx context.Context, line *model.OrderLine) (*model.OrderLine, error) {
	const query = `INSERT INTO order_lines (order_id, dish_id, menu_id, quantity, unit_price, notes, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	dishID, menuID := line.Target.Columns()
	created := *line
	err := r.storage.db().QueryRow(ctx, query,
		line.OrderID, dishID, menuID, line.Quantity, line.UnitPrice, line.Notes, line.Status).Scan(&created.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *orderRepository) ListLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	rows, err := r.storage.db().Query(ctx, `SELECT `+lineColumns+` FROM order_lines WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.OrderLine, error) { return scanLine(rows) })
}

func (r *orderRepository) SetLinesStatus(ctx context.Context, orderID int64, status string) error {
	_, err := r.storage.db().Exec(ctx, `UPDATE order_lines SET status=$1 WHERE order_id=$2`, status, orderID)
	return err
}
