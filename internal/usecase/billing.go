package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// BillingUseCase computes bills and records payments.
type BillingUseCase struct {
	store    repository.Factory
	notifier Notifier
}

// NewBillingUseCase constructs BillingUseCase.
func NewBillingUseCase(store repository.Factory, notifier Notifier) *BillingUseCase {
	return &BillingUseCase{store: store, notifier: notifier}
}

var newReferenceID = func() string { return uuid.NewString() }

// paymentReference keeps a caller supplied reference and generates
// "MOB-XXXXXXXX" for mobile payments that have none.
func paymentReference(method model.PaymentMethod, reference string) string {
	if reference != "" || method != model.PaymentMethodMobile {
		return reference
	}
	hex := strings.ReplaceAll(newReferenceID(), "-", "")
	return "MOB-" + strings.ToUpper(hex[:8])
}

// ProcessPayment records a succeeded payment and forces the order to paid.
func (u *BillingUseCase) ProcessPayment(ctx context.Context, req model.PaymentRequest) (*model.Payment, error) {
	if !req.Method.Valid() {
		return nil, domainErrors.RuleViolation("unknown payment method")
	}
	if req.Amount < 0 {
		return nil, domainErrors.RuleViolation("amount must not be negative")
	}

	var (
		payment *model.Payment
		order   *model.Order
	)
	err := u.store.WithinTransaction(ctx, func(tx repository.Factory) error {
		var err error
		if order, err = tx.Orders().GetByID(ctx, req.OrderID); err != nil {
			return err
		}

		payment, err = tx.Payments().Create(ctx, &model.Payment{
			OrderID:   req.OrderID,
			Amount:    req.Amount,
			Method:    req.Method,
			Status:    model.PaymentStatusSucceeded,
			Reference: paymentReference(req.Method, strings.TrimSpace(req.Reference)),
		})
		if err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				return domainErrors.RuleViolation("order already has a payment")
			}
			return err
		}

		order.Status = model.OrderStatusPaid
		return tx.Orders().UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	u.notifier.OrderStatusChanged(ctx, *order)
	return payment, nil
}

// GetAddition returns the live sum of the order lines, 0 for an empty order.
func (u *BillingUseCase) GetAddition(ctx context.Context, orderID int64) (int64, error) {
	if _, err := u.store.Orders().GetByID(ctx, orderID); err != nil {
		return 0, err
	}
	lines, err := u.store.Orders().ListLines(ctx, orderID)
	if err != nil {
		return 0, err
	}
	return model.SumLines(lines), nil
}

// GetPaymentByOrder returns the payment settling an order.
func (u *BillingUseCase) GetPaymentByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	return u.store.Payments().GetByOrder(ctx, orderID)
}
