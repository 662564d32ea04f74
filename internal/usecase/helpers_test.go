package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/restaurant/internal/domain/model"
	testhelpers "github.com/polkiloo/restaurant/internal/test"
)

type fixture struct {
	store    *testhelpers.MemoryStore
	notifier *testhelpers.NotifierStub
	table    *model.Table
	dishA    *model.Dish
	dishB    *model.Dish
	menu     *model.Menu
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := testhelpers.NewMemoryStore()

	table, err := store.Tables().Create(ctx, &model.Table{Number: 1, Capacity: 4, Status: model.TableStatusFree, QRCode: "qr-1"})
	require.NoError(t, err)
	dishA, err := store.Catalog().CreateDish(ctx, &model.Dish{Name: "Ndole", Price: 1000, Available: true})
	require.NoError(t, err)
	dishB, err := store.Catalog().CreateDish(ctx, &model.Dish{Name: "Poulet DG", Price: 2000, Available: true})
	require.NoError(t, err)
	menu, err := store.Catalog().CreateMenu(ctx, &model.Menu{Name: "Midi", FixedPrice: 2500, Active: true})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		notifier: &testhelpers.NotifierStub{},
		table:    table,
		dishA:    dishA,
		dishB:    dishB,
		menu:     menu,
	}
}

func (f *fixture) orders() *OrderUseCase {
	return NewOrderUseCase(f.store, f.notifier)
}

func (f *fixture) openOrder(t *testing.T, lines ...model.LineDraft) *model.Order {
	t.Helper()
	order, err := f.orders().CreateOrder(context.Background(), model.OrderDraft{
		ClientID: 7,
		TableID:  f.table.ID,
		Type:     "sur_place",
		Lines:    lines,
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) payOrder(t *testing.T, order *model.Order) {
	t.Helper()
	_, err := f.orders().Settle(context.Background(), order.ID, model.PaymentMethodCard)
	require.NoError(t, err)
}
