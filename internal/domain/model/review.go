package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is one rating tied to a settled order.
type Review struct {
	ID        int64
	ClientID  int64
	OrderID   int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
