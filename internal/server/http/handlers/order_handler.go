package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	draft := model.OrderDraft{
		ClientID: actingClient(c, req.ClientID),
		TableID:  req.TableID,
		Type:     req.Type,
		Notes:    req.Notes,
	}
	for _, l := range req.Lines {
		line, err := toLineDraft(l)
		if err != nil {
			badRequest(c, err)
			return
		}
		draft.Lines = append(draft.Lines, line)
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders. Clients only see their own orders.
func (h *OrderHandler) List(c *gin.Context) {
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

	status := model.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		badRequest(c, errors.New("invalid status"))
		return
	}

	orders, err := h.facade.ListOrders(c.Request.Context(), repository.OrderFilter{
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

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.OrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), id, model.OrderPatch{
		ClientID: req.ClientID,
		TableID:  req.TableID,
		ServerID: req.ServerID,
		Type:     req.Type,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddLine handles POST /api/orders/:id/lines.
func (h *OrderHandler) AddLine(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	var req dto.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := toLineDraft(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	line, err := h.facade.AddLine(c.Request.Context(), order.ID, draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLineResponse(*line))
}

// Approve handles POST /api/orders/:id/approve?server_id=. The caller is
// assigned when no server is named.
func (h *OrderHandler) Approve(c *gin.Context) {
	serverID, ok := queryID(c, "server_id")
	if !ok {
		return
	}
	assignee := CurrentUserID(c)
	if serverID != nil {
		assignee = *serverID
	}
	h.transition(c, func(ctx context.Context, id int64) (*model.Order, error) {
		return h.facade.Approve(ctx, id, assignee)
	})
}

// SendToKitchen handles POST /api/orders/:id/send-to-kitchen.
func (h *OrderHandler) SendToKitchen(c *gin.Context) {
	h.transition(c, h.facade.SendToKitchen)
}

// MarkReady handles POST /api/orders/:id/ready?cook_id=.
func (h *OrderHandler) MarkReady(c *gin.Context) {
	cookID, ok := queryID(c, "cook_id")
	if !ok {
		return
	}
	assignee := CurrentUserID(c)
	if cookID != nil {
		assignee = *cookID
	}
	h.transition(c, func(ctx context.Context, id int64) (*model.Order, error) {
		return h.facade.MarkReady(ctx, id, assignee)
	})
}

// MarkServed handles POST /api/orders/:id/serve.
func (h *OrderHandler) MarkServed(c *gin.Context) {
	h.transition(c, h.facade.MarkServed)
}

// ConfirmReceipt handles POST /api/orders/:id/receive.
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	if _, ok := h.load(c); !ok {
		return
	}
	h.transition(c, h.facade.ConfirmReceipt)
}

// Settle handles POST /api/orders/:id/pay?method=.
func (h *OrderHandler) Settle(c *gin.Context) {
	method := model.PaymentMethod(c.DefaultQuery("method", string(model.PaymentMethodCash)))
	h.transition(c, func(ctx context.Context, id int64) (*model.Order, error) {
		return h.facade.Settle(ctx, id, method)
	})
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.facade.Cancel)
}

func (h *OrderHandler) transition(c *gin.Context, apply func(ctx context.Context, id int64) (*model.Order, error)) {
	if c.IsAborted() {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := apply(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// load fetches the order named in the path and enforces client ownership.
func (h *OrderHandler) load(c *gin.Context) (*model.Order, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	order, err := h.facade.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !ensureOwner(c, order.ClientID) {
		return nil, false
	}
	return order, true
}

func toLineDraft(req dto.LineRequest) (model.LineDraft, error) {
	target, err := model.TargetFromColumns(req.DishID, req.MenuID)
	if err != nil {
		return model.LineDraft{}, err
	}
	return model.LineDraft{
		Target:    target,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Notes:     req.Notes,
	}, nil
}

func toLineResponse(l model.OrderLine) dto.LineResponse {
	dishID, menuID := l.Target.Columns()
	return dto.LineResponse{
		ID:        l.ID,
		DishID:    dishID,
		MenuID:    menuID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Subtotal:  l.Subtotal(),
		Notes:     l.Notes,
		Status:    l.Status,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	response := dto.OrderResponse{
		ID:        order.ID,
		ClientID:  order.ClientID,
		TableID:   order.TableID,
		ServerID:  order.ServerID,
		CookID:    order.CookID,
		Status:    string(order.Status),
		Total:     order.Total,
		Type:      order.Type,
		Notes:     order.Notes,
		CreatedAt: order.CreatedAt,
	}
	for _, l := range order.Lines {
		response.Lines = append(response.Lines, toLineResponse(l))
	}
	return response
}
