package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

func TestQuickPayScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()

	order := f.openOrder(t)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Zero(t, order.Total)

	_, err := uc.AddLine(ctx, order.ID, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 2, UnitPrice: 1000})
	require.NoError(t, err)
	_, err = uc.AddLine(ctx, order.ID, model.LineDraft{Target: model.DishTarget(f.dishB.ID), Quantity: 1, UnitPrice: 2000})
	require.NoError(t, err)

	stored, err := uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), stored.Total)

	paid, err := uc.Settle(ctx, order.ID, model.PaymentMethodCard)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)

	payment, err := f.store.Payments().GetByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), payment.Amount)
	assert.Equal(t, model.PaymentMethodCard, payment.Method)
	assert.Equal(t, model.PaymentStatusSucceeded, payment.Status)

	lines, err := f.store.Orders().ListLines(ctx, order.ID)
	require.NoError(t, err)
	for _, l := range lines {
		assert.Equal(t, model.LineStatusPaid, l.Status)
	}

	reviews := NewReviewUseCase(f.store)
	review, err := reviews.CreateReview(ctx, 7, order.ID, 5, "excellent")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	_, err = reviews.CreateReview(ctx, 7, order.ID, 4, "again")
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()
	order := f.openOrder(t, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 1})

	approved, err := uc.Approve(ctx, order.ID, 11)
	require.NoError(t, err)
	require.NotNil(t, approved.ServerID)
	assert.Equal(t, int64(11), *approved.ServerID)

	_, err = uc.SendToKitchen(ctx, order.ID)
	require.NoError(t, err)

	ready, err := uc.MarkReady(ctx, order.ID, 12)
	require.NoError(t, err)
	require.NotNil(t, ready.CookID)
	assert.Equal(t, int64(12), *ready.CookID)

	_, err = uc.MarkServed(ctx, order.ID)
	require.NoError(t, err)
	_, err = uc.ConfirmReceipt(ctx, order.ID)
	require.NoError(t, err)
	_, err = uc.Settle(ctx, order.ID, model.PaymentMethodCash)
	require.NoError(t, err)

	stored, err := uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, stored.Status)
	require.NotNil(t, stored.ServerID)
	require.NotNil(t, stored.CookID)

	assert.Equal(t, []model.OrderStatus{
		model.OrderStatusApproved, model.OrderStatusInProgress, model.OrderStatusReady,
		model.OrderStatusServed, model.OrderStatusReceived, model.OrderStatusPaid,
	}, f.notifier.Statuses())
}

func TestOutOfOrderTransitionsFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()
	order := f.openOrder(t)

	steps := map[string]func() (*model.Order, error){
		"send to kitchen": func() (*model.Order, error) { return uc.SendToKitchen(ctx, order.ID) },
		"mark ready":      func() (*model.Order, error) { return uc.MarkReady(ctx, order.ID, 1) },
		"mark served":     func() (*model.Order, error) { return uc.MarkServed(ctx, order.ID) },
		"confirm receipt": func() (*model.Order, error) { return uc.ConfirmReceipt(ctx, order.ID) },
	}
	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			_, err := step()
			require.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

			var transitionErr *domainErrors.InvalidTransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, name, transitionErr.Operation)
			assert.Equal(t, string(model.OrderStatusPending), transitionErr.Actual)
			assert.Contains(t, err.Error(), "en_attente")
		})
	}

	_, err := uc.Approve(ctx, order.ID, 3)
	require.NoError(t, err)
	_, err = uc.Approve(ctx, order.ID, 3)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	stored, err := uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusApproved, stored.Status)
}

func TestTransitionOnMissingOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders().Approve(context.Background(), 999, 1)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.orders().Cancel(context.Background(), 999)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()

	served := f.openOrder(t)
	_, err := uc.Approve(ctx, served.ID, 1)
	require.NoError(t, err)
	cancelled, err := uc.Cancel(ctx, served.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	_, err = uc.Cancel(ctx, served.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	paid := f.openOrder(t)
	f.payOrder(t, paid)
	_, err = uc.Cancel(ctx, paid.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
}

func TestSettleIsUnguardedButSingle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()

	order := f.openOrder(t, model.LineDraft{Target: model.MenuTarget(f.menu.ID), Quantity: 2})
	assert.Equal(t, int64(5000), order.Total, "menu fixed price is used when unit price is zero")

	_, err := uc.Cancel(ctx, order.ID)
	require.NoError(t, err)

	paid, err := uc.Settle(ctx, order.ID, model.PaymentMethodMobile)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)

	payment, err := f.store.Payments().GetByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), payment.Amount)
	assert.Regexp(t, `^MOB-[0-9A-F]{8}$`, payment.Reference)

	_, err = uc.Settle(ctx, order.ID, model.PaymentMethodCard)
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
	assert.Len(t, f.store.AllPayments(), 1)

	_, err = uc.Settle(ctx, order.ID, model.PaymentMethod("cheque"))
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
	_, err = uc.Settle(ctx, 999, model.PaymentMethodCard)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestSettleRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.openOrder(t, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 1})

	f.store.Failures["orders.update_status"] = errors.New("db down")
	_, err := f.orders().Settle(ctx, order.ID, model.PaymentMethodCard)
	require.EqualError(t, err, "db down")

	_, err = f.store.Payments().GetByOrder(ctx, order.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	lines, err := f.store.Orders().ListLines(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LineStatusPending, lines[0].Status)
	assert.Empty(t, f.notifier.Statuses())
}

func TestTotalIndependentOfInsertionOrder(t *testing.T) {
	f := newFixture(t)
	drafts := []model.LineDraft{
		{Target: model.DishTarget(f.dishA.ID), Quantity: 3},
		{Target: model.DishTarget(f.dishB.ID), Quantity: 1, UnitPrice: 1500},
		{Target: model.MenuTarget(f.menu.ID), Quantity: 2},
	}
	reversed := []model.LineDraft{drafts[2], drafts[1], drafts[0]}

	first := f.openOrder(t, drafts...)
	second := f.openOrder(t, reversed...)

	assert.Equal(t, int64(3*1000+1500+2*2500), first.Total)
	assert.Equal(t, first.Total, second.Total)
	assert.Len(t, first.Lines, 3)
}

func TestAddLineValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()
	order := f.openOrder(t)

	_, err := uc.AddLine(ctx, 999, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 1})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = uc.AddLine(ctx, order.ID, model.LineDraft{Target: model.DishTarget(999), Quantity: 1})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = uc.AddLine(ctx, order.ID, model.LineDraft{Target: model.MenuTarget(999), Quantity: 1})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = uc.AddLine(ctx, order.ID, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 0})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	_, err = uc.AddLine(ctx, order.ID, model.LineDraft{Quantity: 1})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	_, err = uc.AddLine(ctx, order.ID, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 1, UnitPrice: -5})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	line, err := uc.AddLine(ctx, order.ID, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 2, Notes: "sans piment"})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), line.UnitPrice)
	assert.Equal(t, model.LineStatusPending, line.Status)

	stored, err := uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), stored.Total)
}

func TestCreateOrderIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()

	_, err := uc.CreateOrder(ctx, model.OrderDraft{
		ClientID: 7,
		TableID:  f.table.ID,
		Lines: []model.LineDraft{
			{Target: model.DishTarget(f.dishA.ID), Quantity: 1},
			{Target: model.DishTarget(999), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	orders, err := uc.ListOrders(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = uc.CreateOrder(ctx, model.OrderDraft{ClientID: 7, TableID: 999})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = uc.CreateOrder(ctx, model.OrderDraft{TableID: f.table.ID})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
}

func TestUpdateOrderLeavesStatusAndTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()
	order := f.openOrder(t, model.LineDraft{Target: model.DishTarget(f.dishB.ID), Quantity: 1})

	notes := "anniversaire"
	kind := "a_emporter"
	updated, err := uc.UpdateOrder(ctx, order.ID, model.OrderPatch{Notes: &notes, Type: &kind})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, kind, updated.Type)
	assert.Equal(t, model.OrderStatusPending, updated.Status)
	assert.Equal(t, int64(2000), updated.Total)

	missingTable := int64(999)
	_, err = uc.UpdateOrder(ctx, order.ID, model.OrderPatch{TableID: &missingTable})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestListAndDeleteOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orders()

	first := f.openOrder(t, model.LineDraft{Target: model.DishTarget(f.dishA.ID), Quantity: 1})
	second := f.openOrder(t)
	f.payOrder(t, first)
	_, err := NewReviewUseCase(f.store).CreateReview(ctx, 7, first.ID, 4, "")
	require.NoError(t, err)

	client := int64(7)
	all, err := uc.ListOrders(ctx, repository.OrderFilter{ClientID: &client})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	paid, err := uc.ListOrders(ctx, repository.OrderFilter{Status: model.OrderStatusPaid})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, first.ID, paid[0].ID)

	require.NoError(t, uc.DeleteOrder(ctx, first.ID))
	_, err = uc.GetOrder(ctx, first.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.store.Payments().GetByOrder(ctx, first.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.store.Reviews().GetByOrder(ctx, first.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	assert.ErrorIs(t, uc.DeleteOrder(ctx, first.ID), domainErrors.ErrNotFound)
	_, err = uc.GetOrder(ctx, second.ID)
	assert.NoError(t, err)
}
