package dto

import "time"

// ReservationRequest books a table. Staff may book on behalf of ClientID.
type ReservationRequest struct {
	ClientID  int64     `json:"client_id"`
	TableID   int64     `json:"table_id" binding:"required"`
	At        time.Time `json:"date_reservation" binding:"required"`
	PartySize int       `json:"nombre_personnes" binding:"required"`
	Notes     string    `json:"notes"`
}

// ReservationUpdateRequest edits a reservation; omitted fields are kept.
type ReservationUpdateRequest struct {
	TableID   *int64     `json:"table_id"`
	At        *time.Time `json:"date_reservation"`
	PartySize *int       `json:"nombre_personnes"`
	Status    *string    `json:"statut"`
	Notes     *string    `json:"notes"`
}

// ReservationResponse describes a reservation.
type ReservationResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	TableID   int64     `json:"table_id"`
	At        time.Time `json:"date_reservation"`
	PartySize int       `json:"nombre_personnes"`
	Status    string    `json:"statut"`
	Notes     string    `json:"notes,omitempty"`
}

// AvailabilityResponse answers a slot lookup.
type AvailabilityResponse struct {
	TableID   int64     `json:"table_id"`
	At        time.Time `json:"date_reservation"`
	Available bool      `json:"disponible"`
}
