package dto

import "time"

// ReviewRequest rates a paid order.
type ReviewRequest struct {
	OrderID int64  `json:"commande_id"`
	Rating  int    `json:"note" binding:"required"`
	Comment string `json:"commentaire"`
}

// ReviewResponse describes a review.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	OrderID   int64     `json:"commande_id"`
	Rating    int       `json:"note"`
	Comment   string    `json:"commentaire,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
