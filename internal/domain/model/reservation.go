package model

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "en_attente"
	ReservationStatusConfirmed ReservationStatus = "confirmee"
	ReservationStatusCancelled ReservationStatus = "annulee"
	ReservationStatusCompleted ReservationStatus = "terminee"
	ReservationStatusNoShow    ReservationStatus = "non_present"
)

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled,
		ReservationStatusCompleted, ReservationStatusNoShow:
		return true
	}
	return false
}

// ReservationWindow is the half width of the exclusion zone around a booked slot.
const ReservationWindow = 2 * time.Hour

// Reservation books a table for a future time.
type Reservation struct {
	ID        int64
	ClientID  int64
	TableID   int64
	At        time.Time
	PartySize int
	Status    ReservationStatus
	Notes     string
}

// ReservationPatch lists editable reservation attributes.
type ReservationPatch struct {
	ClientID  *int64
	TableID   *int64
	At        *time.Time
	PartySize *int
	Status    *ReservationStatus
	Notes     *string
}
