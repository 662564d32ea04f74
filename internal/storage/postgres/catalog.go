package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

const (
	categoryColumns = `id, name, description`
	dishColumns     = `id, name, description, price, category_id, image_url, available, prep_minutes`
	menuColumns     = `id, name, description, fixed_price, active`
)

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description)
	return c, err
}

func scanDish(row pgx.Row) (model.Dish, error) {
	var d model.Dish
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.CategoryID, &d.ImageURL, &d.Available, &d.PrepMinutes)
	return d, err
}

func scanMenu(row pgx.Row) (model.Menu, error) {
	var m model.Menu
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.FixedPrice, &m.Active)
	return m, err
}

// --- categories ---

func (r *catalogRepository) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	created := *c
	err := r.storage.db().QueryRow(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description).Scan(&created.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *catalogRepository) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	c, err := scanCategory(r.storage.db().QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id=$1`, id))
	if err != nil {
		return nil, mapRowError(err, "category", id)
	}
	return &c, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.storage.db().Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.Category, error) { return scanCategory(rows) })
}

func (r *catalogRepository) UpdateCategory(ctx context.Context, c *model.Category) error {
	tag, err := r.storage.db().Exec(ctx, `UPDATE categories SET name=$1, description=$2 WHERE id=$3`, c.Name, c.Description, c.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(tag, "category", c.ID)
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "category", id)
}

// --- dishes ---

func (r *catalogRepository) CreateDish(ctx context.Context, d *model.Dish) (*model.Dish, error) {
	const query = `INSERT INTO dishes (name, description, price, category_id, image_url, available, prep_minutes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	created := *d
	err := r.storage.db().QueryRow(ctx, query,
		d.Name, d.Description, d.Price, d.CategoryID, d.ImageURL, d.Available, d.PrepMinutes).Scan(&created.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *catalogRepository) GetDish(ctx context.Context, id int64) (*model.Dish, error) {
	d, err := scanDish(r.storage.db().QueryRow(ctx, `SELECT `+dishColumns+` FROM dishes WHERE id=$1`, id))
	if err != nil {
		return nil, mapRowError(err, "dish", id)
	}
	return &d, nil
}

func (r *catalogRepository) ListDishes(ctx context.Context, filter repository.DishFilter) ([]model.Dish, error) {
	b := psql.Select(dishColumns).From("dishes").OrderBy("name")
	if filter.CategoryID != nil {
		b = b.Where(sq.Eq{"category_id": *filter.CategoryID})
	}
	if filter.AvailableOnly {
		b = b.Where(sq.Eq{"available": true})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.db().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.Dish, error) { return scanDish(rows) })
}

func (r *catalogRepository) UpdateDish(ctx context.Context, d *model.Dish) error {
	const query = `UPDATE dishes SET name=$1, description=$2, price=$3, category_id=$4, image_url=$5,
                       available=$6, prep_minutes=$7
                   WHERE id=$8`
	tag, err := r.storage.db().Exec(ctx, query,
		d.Name, d.Description, d.Price, d.CategoryID, d.ImageURL, d.Available, d.PrepMinutes, d.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(tag, "dish", d.ID)
}

func (r *catalogRepository) DeleteDish(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM dishes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "dish", id)
}

// --- menus ---

func (r *catalogRepository) CreateMenu(ctx context.Context, m *model.Menu) (*model.Menu, error) {
	created := *m
	err := r.storage.db().QueryRow(ctx,
		`INSERT INTO menus (name, description, fixed_price, active) VALUES ($1, $2, $3, $4) RETURNING id`,
		m.Name, m.Description, m.FixedPrice, m.Active).Scan(&created.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *catalogRepository) GetMenu(ctx context.Context, id int64) (*model.Menu, error) {
	m, err := scanMenu(r.storage.db().QueryRow(ctx, `SELECT `+menuColumns+` FROM menus WHERE id=$1`, id))
	if err != nil {
		return nil, mapRowError(err, "menu", id)
	}
	if m.DishIDs, err = r.menuDishes(ctx, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *catalogRepository) menuDishes(ctx context.Context, menuID int64) ([]int64, error) {
	rows, err := r.storage.db().Query(ctx, `SELECT dish_id FROM menu_dishes WHERE menu_id=$1 ORDER BY dish_id`, menuID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (int64, error) {
		var id int64
		err := rows.Scan(&id)
		return id, err
	})
}

func (r *catalogRepository) ListMenus(ctx context.Context) ([]model.Menu, error) {
	rows, err := r.storage.db().Query(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.Menu, error) { return scanMenu(rows) })
}

func (r *catalogRepository) UpdateMenu(ctx context.Context, m *model.Menu) error {
	tag, err := r.storage.db().Exec(ctx,
		`UPDATE menus SET name=$1, description=$2, fixed_price=$3, active=$4 WHERE id=$5`,
		m.Name, m.Description, m.FixedPrice, m.Active, m.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(tag, "menu", m.ID)
}

func (r *catalogRepository) DeleteMenu(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM menus WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "menu", id)
}

func (r *catalogRepository) AddMenuDish(ctx context.Context, menuID, dishID int64) error {
	_, err := r.storage.db().Exec(ctx,
		`INSERT INTO menu_dishes (menu_id, dish_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, menuID, dishID)
	return err
}

func (r *catalogRepository) RemoveMenuDish(ctx context.Context, menuID, dishID int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM menu_dishes WHERE menu_id=$1 AND dish_id=$2`, menuID, dishID)
	if err != nil {
		return err
	}
	return expectAffected(tag, "menu dish", dishID)
}
