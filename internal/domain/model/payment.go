package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "carte"
	PaymentMethodCash   PaymentMethod = "especes"
	PaymentMethodMobile PaymentMethod = "mobile"
)

// Valid reports whether m is an accepted method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCash || m == PaymentMethodMobile
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "en_attente"
	PaymentStatusSucceeded PaymentStatus = "reussi"
	PaymentStatusFailed    PaymentStatus = "echoue"
)

// Payment settles exactly one order.
type Payment struct {
	ID        int64
	OrderID   int64
	Amount    int64
	Method    PaymentMethod
	Status    PaymentStatus
	Reference string
	PaidAt    time.Time
}

// PaymentRequest is a client initiated payment for an order.
type PaymentRequest struct {
	OrderID   int64
	Amount    int64
	Method    PaymentMethod
	Reference string
}
