package usecase

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

var errSlotTaken = domainErrors.RuleViolation("table already booked for this slot")

// ReservationUseCase books tables while keeping a two hour gap per table.
type ReservationUseCase struct {
	store repository.Factory
}

// NewReservationUseCase constructs ReservationUseCase.
func NewReservationUseCase(store repository.Factory) *ReservationUseCase {
	return &ReservationUseCase{store: store}
}

// IsTableAvailable reports whether no live reservation of the table lies
// strictly within ReservationWindow of at. excludeID is ignored in the check.
func (u *ReservationUseCase) IsTableAvailable(ctx context.Context, tableID int64, at time.Time, excludeID *int64) (bool, error) {
	count, err := u.store.Reservations().CountActiveBetween(ctx, tableID,
		at.Add(-model.ReservationWindow), at.Add(model.ReservationWindow), excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateReservation books a table when the slot is free.
func (u *ReservationUseCase) CreateReservation(ctx context.Context, res model.Reservation) (*model.Reservation, error) {
	if res.PartySize <= 0 {
		return nil, domainErrors.RuleViolation("party size must be positive")
	}
	if _, err := u.store.Tables().GetByID(ctx, res.TableID); err != nil {
		return nil, err
	}

	available, err := u.IsTableAvailable(ctx, res.TableID, res.At, nil)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, errSlotTaken
	}

	res.Status = model.ReservationStatusPending
	return u.store.Reservations().Create(ctx, &res)
}

// UpdateReservation applies patch, rechecking the slot when table or time moves
// or when a cancelled reservation is brought back.
func (u *ReservationUseCase) UpdateReservation(ctx context.Context, id int64, patch model.ReservationPatch) (*model.Reservation, error) {
	res, err := u.store.Reservations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := false
	wasCancelled := res.Status == model.ReservationStatusCancelled
	if patch.ClientID != nil {
		res.ClientID = *patch.ClientID
	}
	if patch.TableID != nil && *patch.TableID != res.TableID {
		if _, err := u.store.Tables().GetByID(ctx, *patch.TableID); err != nil {
			return nil, err
		}
		res.TableID = *patch.TableID
		moved = true
	}
	if patch.At != nil && !patch.At.Equal(res.At) {
		res.At = *patch.At
		moved = true
	}
	if patch.PartySize != nil {
		if *patch.PartySize <= 0 {
			return nil, domainErrors.RuleViolation("party size must be positive")
		}
		res.PartySize = *patch.PartySize
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, domainErrors.RuleViolation("unknown reservation status")
		}
		res.Status = *patch.Status
	}
	if patch.Notes != nil {
		res.Notes = *patch.Notes
	}

	if (moved || wasCancelled) && res.Status != model.ReservationStatusCancelled {
		available, err := u.IsTableAvailable(ctx, res.TableID, res.At, &res.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, errSlotTaken
		}
	}

	if err := u.store.Reservations().Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ConfirmReservation accepts a pending reservation.
func (u *ReservationUseCase) ConfirmReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	return u.changeStatus(ctx, id, "confirm", model.ReservationStatusConfirmed, model.ReservationStatusPending)
}

// CancelReservation frees the slot of a pending or confirmed reservation.
func (u *ReservationUseCase) CancelReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	return u.changeStatus(ctx, id, "cancel reservation", model.ReservationStatusCancelled,
		model.ReservationStatusPending, model.ReservationStatusConfirmed)
}

func (u *ReservationUseCase) changeStatus(ctx context.Context, id int64, op string, to model.ReservationStatus, from ...model.ReservationStatus) (*model.Reservation, error) {
	res, err := u.store.Reservations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	expected := make([]string, 0, len(from))
	for _, s := range from {
		expected = append(expected, string(s))
		if s == res.Status {
			allowed = true
		}
	}
	if !allowed {
		return nil, &domainErrors.InvalidTransitionError{Operation: op, Actual: string(res.Status), Expected: expected}
	}

	res.Status = to
	if err := u.store.Reservations().Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetReservation returns a reservation by id.
func (u *ReservationUseCase) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	return u.store.Reservations().GetByID(ctx, id)
}

// ListReservations returns reservations matching filter, earliest first.
func (u *ReservationUseCase) ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error) {
	return u.store.Reservations().List(ctx, filter)
}

// DeleteReservation removes a reservation.
func (u *ReservationUseCase) DeleteReservation(ctx context.Context, id int64) error {
	return u.store.Reservations().Delete(ctx, id)
}
