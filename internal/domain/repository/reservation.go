package repository

import (
	"context"
	"time"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// ReservationFilter narrows reservation listings.
type ReservationFilter struct {
	ClientID *int64
	TableID  *int64
	Status   model.ReservationStatus
	Limit    int
	Offset   int
}

// ReservationRepository describes persistence operations for table bookings.
type ReservationRepository interface {
	Create(ctx context.Context, r *model.Reservation) (*model.Reservation, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error)
	Update(ctx context.Context, r *model.Reservation) error
	Delete(ctx context.Context, id int64) error
	// CountActiveBetween counts non cancelled bookings of a table strictly inside (from, to).
	CountActiveBetween(ctx context.Context, tableID int64, from, to time.Time, excludeID *int64) (int, error)
}
