package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// PaymentHandler exposes bills and payments.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Pay handles POST /api/payments.
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.owns(c, req.OrderID) {
		return
	}

	payment, err := h.facade.ProcessPayment(c.Request.Context(), model.PaymentRequest{
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Method:    model.PaymentMethod(req.Method),
		Reference: req.Reference,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

// Bill handles GET /api/payments/bill/:order_id.
func (h *PaymentHandler) Bill(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok || !h.owns(c, orderID) {
		return
	}
	total, err := h.facade.GetAddition(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BillResponse{OrderID: orderID, Total: total})
}

// ByOrder handles GET /api/payments/order/:order_id.
func (h *PaymentHandler) ByOrder(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok || !h.owns(c, orderID) {
		return
	}
	payment, err := h.facade.GetPaymentByOrder(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(*payment))
}

func (h *PaymentHandler) owns(c *gin.Context, orderID int64) bool {
	if !isClient(c) {
		return true
	}
	order, err := h.facade.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return false
	}
	return ensureOwner(c, order.ClientID)
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Status:    string(p.Status),
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}
