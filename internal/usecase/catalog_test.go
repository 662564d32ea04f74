package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	testhelpers "github.com/polkiloo/restaurant/internal/test"
)

func TestCategories(t *testing.T) {
	uc := NewCatalogUseCase(testhelpers.NewMemoryStore().Catalog())
	ctx := context.Background()

	entrees, err := uc.CreateCategory(ctx, model.Category{Name: "Entrees"})
	require.NoError(t, err)
	_, err = uc.CreateCategory(ctx, model.Category{Name: "Entrees"})
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
	_, err = uc.CreateCategory(ctx, model.Category{Name: "  "})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	entrees.Description = "froides et chaudes"
	updated, err := uc.UpdateCategory(ctx, *entrees)
	require.NoError(t, err)
	assert.Equal(t, "froides et chaudes", updated.Description)

	_, err = uc.UpdateCategory(ctx, model.Category{ID: 999, Name: "x"})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	list, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteCategory(ctx, entrees.ID))
	_, err = uc.GetCategory(ctx, entrees.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestDishes(t *testing.T) {
	uc := NewCatalogUseCase(testhelpers.NewMemoryStore().Catalog())
	ctx := context.Background()

	plats, err := uc.CreateCategory(ctx, model.Category{Name: "Plats"})
	require.NoError(t, err)

	dish, err := uc.CreateDish(ctx, model.Dish{Name: "Eru", Price: 1500, CategoryID: &plats.ID, Available: true})
	require.NoError(t, err)
	_, err = uc.CreateDish(ctx, model.Dish{Name: "Koki", Price: 800})
	require.NoError(t, err)

	_, err = uc.CreateDish(ctx, model.Dish{Name: "Gratuit", Price: -1})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
	missing := int64(999)
	_, err = uc.CreateDish(ctx, model.Dish{Name: "Orphelin", CategoryID: &missing})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	inCategory, err := uc.ListDishes(ctx, repository.DishFilter{CategoryID: &plats.ID})
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, dish.ID, inCategory[0].ID)

	available, err := uc.ListDishes(ctx, repository.DishFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, available, 1)

	dish.Price = 1700
	updated, err := uc.UpdateDish(ctx, *dish)
	require.NoError(t, err)
	assert.Equal(t, int64(1700), updated.Price)

	stored, err := uc.GetDish(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1700), stored.Price)

	require.NoError(t, uc.DeleteDish(ctx, dish.ID))
	assert.ErrorIs(t, uc.DeleteDish(ctx, dish.ID), domainErrors.ErrNotFound)
}

func TestMenus(t *testing.T) {
	uc := NewCatalogUseCase(testhelpers.NewMemoryStore().Catalog())
	ctx := context.Background()

	soup, err := uc.CreateDish(ctx, model.Dish{Name: "Soupe", Price: 500})
	require.NoError(t, err)
	fish, err := uc.CreateDish(ctx, model.Dish{Name: "Poisson", Price: 3000})
	require.NoError(t, err)

	menu, err := uc.CreateMenu(ctx, model.Menu{Name: "Soir", FixedPrice: 3200, Active: true, DishIDs: []int64{fish.ID, soup.ID}})
	require.NoError(t, err)
	assert.Equal(t, []int64{soup.ID, fish.ID}, menu.DishIDs)

	_, err = uc.CreateMenu(ctx, model.Menu{Name: "Vide", FixedPrice: -5})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
	_, err = uc.CreateMenu(ctx, model.Menu{Name: "Fantome", DishIDs: []int64{999}})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	require.NoError(t, uc.RemoveMenuDish(ctx, menu.ID, soup.ID))
	assert.ErrorIs(t, uc.RemoveMenuDish(ctx, menu.ID, soup.ID), domainErrors.ErrNotFound)
	assert.ErrorIs(t, uc.AddMenuDish(ctx, menu.ID, 999), domainErrors.ErrNotFound)

	menu.FixedPrice = 2900
	updated, err := uc.UpdateMenu(ctx, *menu)
	require.NoError(t, err)
	assert.Equal(t, int64(2900), updated.FixedPrice)
	assert.Equal(t, []int64{fish.ID}, updated.DishIDs)

	require.NoError(t, uc.DeleteMenu(ctx, menu.ID))
	_, err = uc.GetMenu(ctx, menu.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
