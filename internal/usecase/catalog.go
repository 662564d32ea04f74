package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// CatalogUseCase manages categories, dishes and menu bundles.
type CatalogUseCase struct {
	catalog repository.CatalogRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog}
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domainErrors.RuleViolation("name is required")
	}
	return nil
}

func (u *CatalogUseCase) CreateCategory(ctx context.Context, c model.Category) (*model.Category, error) {
	if err := requireName(c.Name); err != nil {
		return nil, err
	}
	return u.catalog.CreateCategory(ctx, &c)
}

func (u *CatalogUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return u.catalog.GetCategory(ctx, id)
}

func (u *CatalogUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return u.catalog.ListCategories(ctx)
}

func (u *CatalogUseCase) UpdateCategory(ctx context.Context, c model.Category) (*model.Category, error) {
	if err := requireName(c.Name); err != nil {
		return nil, err
	}
	if err := u.catalog.UpdateCategory(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.catalog.DeleteCategory(ctx, id)
}

func (u *CatalogUseCase) validateDish(ctx context.Context, d *model.Dish) error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	if d.Price < 0 {
		return domainErrors.RuleViolation("price must not be negative")
	}
	if d.CategoryID != nil {
		if _, err := u.catalog.GetCategory(ctx, *d.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

// CreateDish adds a dish to the card.
func (u *CatalogUseCase) CreateDish(ctx context.Context, d model.Dish) (*model.Dish, error) {
	if err := u.validateDish(ctx, &d); err != nil {
		return nil, err
	}
	return u.catalog.CreateDish(ctx, &d)
}

func (u *CatalogUseCase) GetDish(ctx context.Context, id int64) (*model.Dish, error) {
	return u.catalog.GetDish(ctx, id)
}

func (u *CatalogUseCase) ListDishes(ctx context.Context, filter repository.DishFilter) ([]model.Dish, error) {
	return u.catalog.ListDishes(ctx, filter)
}

func (u *CatalogUseCase) UpdateDish(ctx context.Context, d model.Dish) (*model.Dish, error) {
	if err := u.validateDish(ctx, &d); err != nil {
		return nil, err
	}
	if err := u.catalog.UpdateDish(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (u *CatalogUseCase) DeleteDish(ctx context.Context, id int64) error {
	return u.catalog.DeleteDish(ctx, id)
}

func validateMenu(m *model.Menu) error {
	if err := requireName(m.Name); err != nil {
		return err
	}
	if m.FixedPrice < 0 {
		return domainErrors.RuleViolation("fixed price must not be negative")
	}
	return nil
}

// CreateMenu creates a bundle and attaches the listed dishes.
func (u *CatalogUseCase) CreateMenu(ctx context.Context, m model.Menu) (*model.Menu, error) {
	if err := validateMenu(&m); err != nil {
		return nil, err
	}
	created, err := u.catalog.CreateMenu(ctx, &m)
	if err != nil {
		return nil, err
	}
	for _, dishID := range m.DishIDs {
		if err := u.AddMenuDish(ctx, created.ID, dishID); err != nil {
			return nil, err
		}
	}
	return u.catalog.GetMenu(ctx, created.ID)
}

// GetMenu returns a bundle with its dish ids.
func (u *CatalogUseCase) GetMenu(ctx context.Context, id int64) (*model.Menu, error) {
	return u.catalog.GetMenu(ctx, id)
}

func (u *CatalogUseCase) ListMenus(ctx context.Context) ([]model.Menu, error) {
	return u.catalog.ListMenus(ctx)
}

func (u *CatalogUseCase) UpdateMenu(ctx context.Context, m model.Menu) (*model.Menu, error) {
	if err := validateMenu(&m); err != nil {
		return nil, err
	}
	if err := u.catalog.UpdateMenu(ctx, &m); err != nil {
		return nil, err
	}
	return u.catalog.GetMenu(ctx, m.ID)
}

func (u *CatalogUseCase) DeleteMenu(ctx context.Context, id int64) error {
	return u.catalog.DeleteMenu(ctx, id)
}

// AddMenuDish attaches an existing dish to a menu.
func (u *CatalogUseCase) AddMenuDish(ctx context.Context, menuID, dishID int64) error {
	if _, err := u.catalog.GetDish(ctx, dishID); err != nil {
		return err
	}
	return u.catalog.AddMenuDish(ctx, menuID, dishID)
}

func (u *CatalogUseCase) RemoveMenuDish(ctx context.Context, menuID, dishID int64) error {
	return u.catalog.RemoveMenuDish(ctx, menuID, dishID)
}
