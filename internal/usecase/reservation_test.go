package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

var noon = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func book(tableID int64, at time.Time) model.Reservation {
	return model.Reservation{ClientID: 7, TableID: tableID, At: at, PartySize: 2}
}

func TestReservationSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	first, err := uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusPending, first.Status)

	_, err = uc.CreateReservation(ctx, book(f.table.ID, noon.Add(time.Hour)))
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	_, err = uc.CreateReservation(ctx, book(f.table.ID, noon.Add(3*time.Hour)))
	assert.NoError(t, err)
}

func TestReservationWindowBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	_, err := uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)

	available, err := uc.IsTableAvailable(ctx, f.table.ID, noon.Add(2*time.Hour), nil)
	require.NoError(t, err)
	assert.True(t, available, "exactly two hours apart is allowed")

	available, err = uc.IsTableAvailable(ctx, f.table.ID, noon.Add(-2*time.Hour+time.Minute), nil)
	require.NoError(t, err)
	assert.False(t, available)

	other, err := f.store.Tables().Create(ctx, &model.Table{Number: 2, Capacity: 2, Status: model.TableStatusFree, QRCode: "qr-2"})
	require.NoError(t, err)
	available, err = uc.IsTableAvailable(ctx, other.ID, noon, nil)
	require.NoError(t, err)
	assert.True(t, available, "other tables are unaffected")
}

func TestCancelledReservationFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	res, err := uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)
	_, err = uc.CancelReservation(ctx, res.ID)
	require.NoError(t, err)

	_, err = uc.CreateReservation(ctx, book(f.table.ID, noon.Add(30*time.Minute)))
	assert.NoError(t, err)
}

func TestReactivatingCancelledReservationRechecksSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	first, err := uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)
	_, err = uc.CancelReservation(ctx, first.ID)
	require.NoError(t, err)
	_, err = uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)

	pending := model.ReservationStatusPending
	_, err = uc.UpdateReservation(ctx, first.ID, model.ReservationPatch{Status: &pending})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	stored, err := uc.GetReservation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, stored.Status)

	later := noon.Add(4 * time.Hour)
	revived, err := uc.UpdateReservation(ctx, first.ID, model.ReservationPatch{Status: &pending, At: &later})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusPending, revived.Status)
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	bad := book(f.table.ID, noon)
	bad.PartySize = 0
	_, err := uc.CreateReservation(ctx, bad)
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	_, err = uc.CreateReservation(ctx, book(999, noon))
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	forced := book(f.table.ID, noon)
	forced.Status = model.ReservationStatusConfirmed
	res, err := uc.CreateReservation(ctx, forced)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusPending, res.Status)

	f.store.Failures["reservations.count"] = errors.New("count failed")
	_, err = uc.CreateReservation(ctx, book(f.table.ID, noon.Add(24*time.Hour)))
	assert.EqualError(t, err, "count failed")
}

func TestUpdateReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	res, err := uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)
	evening, err := uc.CreateReservation(ctx, book(f.table.ID, noon.Add(6*time.Hour)))
	require.NoError(t, err)

	shifted := noon.Add(30 * time.Minute)
	updated, err := uc.UpdateReservation(ctx, res.ID, model.ReservationPatch{At: &shifted})
	require.NoError(t, err, "a reservation does not collide with itself")
	assert.True(t, updated.At.Equal(shifted))

	clash := noon.Add(5 * time.Hour)
	_, err = uc.UpdateReservation(ctx, res.ID, model.ReservationPatch{At: &clash})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	size := 6
	notes := "terrasse"
	updated, err = uc.UpdateReservation(ctx, evening.ID, model.ReservationPatch{PartySize: &size, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.PartySize)
	assert.Equal(t, "terrasse", updated.Notes)

	zero := 0
	_, err = uc.UpdateReservation(ctx, evening.ID, model.ReservationPatch{PartySize: &zero})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	bogus := model.ReservationStatus("perdue")
	_, err = uc.UpdateReservation(ctx, evening.ID, model.ReservationPatch{Status: &bogus})
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	missingTable := int64(999)
	_, err = uc.UpdateReservation(ctx, evening.ID, model.ReservationPatch{TableID: &missingTable})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = uc.UpdateReservation(ctx, 999, model.ReservationPatch{Notes: &notes})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestReservationStatusChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	res, err := uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)

	confirmed, err := uc.ConfirmReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, confirmed.Status)

	_, err = uc.ConfirmReservation(ctx, res.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	cancelled, err := uc.CancelReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, cancelled.Status)

	_, err = uc.CancelReservation(ctx, res.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	_, err = uc.ConfirmReservation(ctx, 999)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestListAndDeleteReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewReservationUseCase(f.store)

	late, err := uc.CreateReservation(ctx, book(f.table.ID, noon.Add(5*time.Hour)))
	require.NoError(t, err)
	early, err := uc.CreateReservation(ctx, book(f.table.ID, noon))
	require.NoError(t, err)

	list, err := uc.ListReservations(ctx, repository.ReservationFilter{TableID: &f.table.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)

	require.NoError(t, uc.DeleteReservation(ctx, early.ID))
	_, err = uc.GetReservation(ctx, early.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteReservation(ctx, early.ID), domainErrors.ErrNotFound)
}
