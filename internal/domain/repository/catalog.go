package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// DishFilter narrows dish listings.
type DishFilter struct {
	CategoryID    *int64
	AvailableOnly bool
}

// CatalogRepository covers categories, dishes and menu bundles.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateDish(ctx context.Context, d *model.Dish) (*model.Dish, error)
	GetDish(ctx context.Context, id int64) (*model.Dish, error)
	ListDishes(ctx context.Context, filter DishFilter) ([]model.Dish, error)
	UpdateDish(ctx context.Context, d *model.Dish) error
	DeleteDish(ctx context.Context, id int64) error

	CreateMenu(ctx context.Context, m *model.Menu) (*model.Menu, error)
	GetMenu(ctx context.Context, id int64) (*model.Menu, error)
	ListMenus(ctx context.Context) ([]model.Menu, error)
	UpdateMenu(ctx context.Context, m *model.Menu) error
	DeleteMenu(ctx context.Context, id int64) error
	AddMenuDish(ctx context.Context, menuID, dishID int64) error
	RemoveMenuDish(ctx context.Context, menuID, dishID int64) error
}
