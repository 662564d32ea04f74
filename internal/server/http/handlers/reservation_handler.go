package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	"github.com/polkiloo/restaurant/internal/pkg/rbac"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// ReservationHandler manages table bookings.
type ReservationHandler struct {
	facade ReservationFacade
}

// NewReservationHandler constructs ReservationHandler.
func NewReservationHandler(facade ReservationFacade) *ReservationHandler {
	return &ReservationHandler{facade: facade}
}

// Create handles POST /api/reservations.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.facade.CreateReservation(c.Request.Context(), model.Reservation{
		ClientID:  actingClient(c, req.ClientID),
		TableID:   req.TableID,
		At:        req.At,
		PartySize: req.PartySize,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReservationResponse(*res))
}

// Availability handles GET /api/reservations/availability?table_id=&at=.
func (h *ReservationHandler) Availability(c *gin.Context) {
	tableID, ok := queryID(c, "table_id")
	if !ok {
		return
	}
	if tableID == nil {
		badRequest(c, errors.New("missing table_id"))
		return
	}
	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		badRequest(c, errors.New("invalid at, expected RFC 3339"))
		return
	}

	available, err := h.facade.IsTableAvailable(c.Request.Context(), *tableID, at, nil)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AvailabilityResponse{TableID: *tableID, At: at, Available: available})
}

// List handles GET /api/reservations. Clients only see their own bookings.
func (h *ReservationHandler) List(c *gin.Context) {
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}
	tableID, ok := queryID(c, "table_id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 100)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}
	if isClient(c) {
		self := CurrentUserID(c)
		clientID = &self
	}
	status := model.ReservationStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		badRequest(c, errors.New("invalid status"))
		return
	}

	list, err := h.facade.ListReservations(c.Request.Context(), repository.ReservationFilter{
		ClientID: clientID,
		TableID:  tableID,
		Status:   status,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		response = append(response, toReservationResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/reservations/:id.
func (h *ReservationHandler) Get(c *gin.Context) {
	res, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(*res))
}

// Update handles PUT /api/reservations/:id.
func (h *ReservationHandler) Update(c *gin.Context) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	var req dto.ReservationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	patch := model.ReservationPatch{
		TableID:   req.TableID,
		At:        req.At,
		PartySize: req.PartySize,
		Notes:     req.Notes,
	}
	if req.Status != nil {
		// Clients go through /confirm and /cancel for status changes.
		if err := rbac.Authorize(CurrentRole(c), rbac.ManageReservations); err != nil {
			writeError(c, err)
			return
		}
		status := model.ReservationStatus(*req.Status)
		patch.Status = &status
	}

	res, err := h.facade.UpdateReservation(c.Request.Context(), current.ID, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(*res))
}

// Delete handles DELETE /api/reservations/:id.
func (h *ReservationHandler) Delete(c *gin.Context) {
	res, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteReservation(c.Request.Context(), res.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Confirm handles POST /api/reservations/:id/confirm.
func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.facade.ConfirmReservation)
}

// Cancel handles POST /api/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.facade.CancelReservation)
}

func (h *ReservationHandler) changeStatus(c *gin.Context, apply func(ctx context.Context, id int64) (*model.Reservation, error)) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	res, err := apply(c.Request.Context(), current.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(*res))
}

func (h *ReservationHandler) load(c *gin.Context) (*model.Reservation, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	res, err := h.facade.GetReservation(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !ensureOwner(c, res.ClientID) {
		return nil, false
	}
	return res, true
}

func toReservationResponse(r model.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:        r.ID,
		ClientID:  r.ClientID,
		TableID:   r.TableID,
		At:        r.At,
		PartySize: r.PartySize,
		Status:    string(r.Status),
		Notes:     r.Notes,
	}
}
