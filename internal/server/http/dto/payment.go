package dto

import "time"

// PaymentRequest pays an order.
type PaymentRequest struct {
	OrderID   int64  `json:"commande_id" binding:"required"`
	Amount    int64  `json:"montant"`
	Method    string `json:"methode" binding:"required"`
	Reference string `json:"reference"`
}

// PaymentResponse describes a recorded payment.
type PaymentResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"commande_id"`
	Amount    int64     `json:"montant"`
	Method    string    `json:"methode"`
	Status    string    `json:"statut"`
	Reference string    `json:"reference,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

// BillResponse is the live total of an order.
type BillResponse struct {
	OrderID int64 `json:"commande_id"`
	Total   int64 `json:"montant_total"`
}
