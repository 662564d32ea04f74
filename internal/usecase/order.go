package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// OrderUseCase owns the order status machine and the derived total.
type OrderUseCase struct {
	store    repository.Factory
	notifier Notifier
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(store repository.Factory, notifier Notifier) *OrderUseCase {
	return &OrderUseCase{store: store, notifier: notifier}
}

// CreateOrder opens a pending order with its initial lines in one transaction.
func (u *OrderUseCase) CreateOrder(ctx context.Context, in model.OrderDraft) (*model.Order, error) {
	if in.ClientID <= 0 {
		return nil, domainErrors.RuleViolation("client is required")
	}

	var created *model.Order
	err := u.store.WithinTransaction(ctx, func(tx repository.Factory) error {
		if _, err := tx.Tables().GetByID(ctx, in.TableID); err != nil {
			return err
		}

		order, err := tx.Orders().Create(ctx, &model.Order{
			ClientID: in.ClientID,
			TableID:  in.TableID,
			Status:   model.OrderStatusPending,
			Type:     in.Type,
			Notes:    in.Notes,
		})
		if err != nil {
			return err
		}

		for _, line := range in.Lines {
			if _, err := addLine(ctx, tx, order.ID, line); err != nil {
				return err
			}
		}

		if order.Lines, order.Total, err = recomputeTotal(ctx, tx, order.ID); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddLine appends a line, freezing its unit price, and recomputes the order total.
func (u *OrderUseCase) AddLine(ctx context.Context, orderID int64, in model.LineDraft) (*model.OrderLine, error) {
	var added *model.OrderLine
	err := u.store.WithinTransaction(ctx, func(tx repository.Factory) error {
		if _, err := tx.Orders().GetByID(ctx, orderID); err != nil {
			return err
		}
		line, err := addLine(ctx, tx, orderID, in)
		if err != nil {
			return err
		}
		if _, _, err := recomputeTotal(ctx, tx, orderID); err != nil {
			return err
		}
		added = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func addLine(ctx context.Context, tx repository.Factory, orderID int64, in model.LineDraft) (*model.OrderLine, error) {
	if in.Quantity <= 0 {
		return nil, domainErrors.RuleViolation("quantity must be positive")
	}
	if in.UnitPrice < 0 {
		return nil, domainErrors.RuleViolation("unit price must not be negative")
	}

	price, err := catalogPrice(ctx, tx.Catalog(), in.Target)
	if err != nil {
		return nil, err
	}
	if in.UnitPrice != 0 {
		price = in.UnitPrice
	}

	return tx.Orders().AddLine(ctx, &model.OrderLine{
		OrderID:   orderID,
		Target:    in.Target,
		Quantity:  in.Quantity,
		UnitPrice: price,
		Notes:     in.Notes,
		Status:    model.LineStatusPending,
	})
}

func catalogPrice(ctx context.Context, catalog repository.CatalogRepository, target model.LineTarget) (int64, error) {
	switch target.Kind() {
	case model.TargetDish:
		dish, err := catalog.GetDish(ctx, target.ID())
		if err != nil {
			return 0, err
		}
		return dish.Price, nil
	case model.TargetMenu:
		menu, err := catalog.GetMenu(ctx, target.ID())
		if err != nil {
			return 0, err
		}
		return menu.FixedPrice, nil
	}
	return 0, domainErrors.RuleViolation("line must reference a dish or a menu")
}

func recomputeTotal(ctx context.Context, tx repository.Factory, orderID int64) ([]model.OrderLine, int64, error) {
	lines, err := tx.Orders().ListLines(ctx, orderID)
	if err != nil {
		return nil, 0, err
	}
	total := model.SumLines(lines)
	if err := tx.Orders().SetTotal(ctx, orderID, total); err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

// Approve moves a pending order to approved and assigns the server.
func (u *OrderUseCase) Approve(ctx context.Context, orderID, serverID int64) (*model.Order, error) {
	return u.transition(ctx, orderID, model.TransitionApprove, func(o *model.Order) { o.ServerID = &serverID })
}

// SendToKitchen hands an approved order over to the kitchen.
func (u *OrderUseCase) SendToKitchen(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.transition(ctx, orderID, model.TransitionSendToKitchen, nil)
}

// MarkReady records the cook and flags the order ready to serve.
func (u *OrderUseCase) MarkReady(ctx context.Context, orderID, cookID int64) (*model.Order, error) {
	return u.transition(ctx, orderID, model.TransitionMarkReady, func(o *model.Order) { o.CookID = &cookID })
}

// MarkServed flags a ready order as served.
func (u *OrderUseCase) MarkServed(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.transition(ctx, orderID, model.TransitionMarkServed, nil)
}

// ConfirmReceipt records that the client received a served order.
func (u *OrderUseCase) ConfirmReceipt(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.transition(ctx, orderID, model.TransitionConfirmReceipt, nil)
}

// Cancel administratively cancels any order that is neither paid nor cancelled.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.transition(ctx, orderID, model.TransitionCancel, nil)
}

func (u *OrderUseCase) transition(ctx context.Context, orderID int64, t model.Transition, apply func(*model.Order)) (*model.Order, error) {
	order, err := u.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !t.Allows(order.Status) {
		expected := make([]string, 0, len(t.From))
		for _, s := range t.From {
			expected = append(expected, string(s))
		}
		return nil, &domainErrors.InvalidTransitionError{
			Operation: t.Name,
			Actual:    string(order.Status),
			Expected:  expected,
		}
	}

	if apply != nil {
		apply(order)
	}
	order.Status = t.To

	if err := u.store.Orders().UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	u.notifier.OrderStatusChanged(ctx, *order)
	return order, nil
}

// Settle records a succeeded payment of the order total and marks the order
// and all its lines paid, whatever the current status.
func (u *OrderUseCase) Settle(ctx context.Context, orderID int64, method model.PaymentMethod) (*model.Order, error) {
	if !method.Valid() {
		return nil, domainErrors.RuleViolation("unknown payment method")
	}

	var settled *model.Order
	err := u.store.WithinTransaction(ctx, func(tx repository.Factory) error {
		order, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		_, err = tx.Payments().Create(ctx, &model.Payment{
			OrderID:   order.ID,
			Amount:    order.Total,
			Method:    method,
			Status:    model.PaymentStatusSucceeded,
			Reference: paymentReference(method, ""),
		})
		if err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				return domainErrors.RuleViolation("order is already settled")
			}
			return err
		}

		if err := tx.Orders().SetLinesStatus(ctx, order.ID, model.LineStatusPaid); err != nil {
			return err
		}

		order.Status = model.OrderStatusPaid
		if err := tx.Orders().UpdateStatus(ctx, order); err != nil {
			return err
		}
		settled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.OrderStatusChanged(ctx, *settled)
	return settled, nil
}

// UpdateOrder edits descriptive fields; status and total are never touched.
func (u *OrderUseCase) UpdateOrder(ctx context.Context, orderID int64, patch model.OrderPatch) (*model.Order, error) {
	if patch.TableID != nil {
		if _, err := u.store.Tables().GetByID(ctx, *patch.TableID); err != nil {
			return nil, err
		}
	}
	return u.store.Orders().Update(ctx, orderID, patch)
}

// DeleteOrder removes an order with its lines, payment and review.
func (u *OrderUseCase) DeleteOrder(ctx context.Context, orderID int64) error {
	return u.store.Orders().Delete(ctx, orderID)
}

// GetOrder returns the order with its lines.
func (u *OrderUseCase) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Lines, err = u.store.Orders().ListLines(ctx, orderID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns orders matching filter, newest first.
func (u *OrderUseCase) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return u.store.Orders().List(ctx, filter)
}
