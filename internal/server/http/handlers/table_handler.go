package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// TableHandler manages the dining room tables.
type TableHandler struct {
	facade TableFacade
}

// NewTableHandler constructs TableHandler.
func NewTableHandler(facade TableFacade) *TableHandler {
	return &TableHandler{facade: facade}
}

// Create handles POST /api/tables.
func (h *TableHandler) Create(c *gin.Context) {
	var req dto.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	table, err := h.facade.CreateTable(c.Request.Context(), req.Number, req.Capacity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTableResponse(*table))
}

// Update handles PUT /api/tables/:id.
func (h *TableHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	table, err := h.facade.UpdateTable(c.Request.Context(), id, req.Number, req.Capacity, model.TableStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTableResponse(*table))
}

// Get handles GET /api/tables/:id.
func (h *TableHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, func() (*model.Table, error) { return h.facade.GetTable(c.Request.Context(), id) })
}

// GetByNumber handles GET /api/tables/number/:number.
func (h *TableHandler) GetByNumber(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		badRequest(c, errors.New("invalid number"))
		return
	}
	h.respond(c, func() (*model.Table, error) { return h.facade.GetByNumber(c.Request.Context(), number) })
}

// GetByQRCode handles GET /api/tables/qr/:code.
func (h *TableHandler) GetByQRCode(c *gin.Context) {
	code := c.Param("code")
	h.respond(c, func() (*model.Table, error) { return h.facade.GetByQRCode(c.Request.Context(), code) })
}

// Occupy handles POST /api/tables/:id/occupy.
func (h *TableHandler) Occupy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, func() (*model.Table, error) { return h.facade.Occupy(c.Request.Context(), id) })
}

// Free handles POST /api/tables/:id/free.
func (h *TableHandler) Free(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, func() (*model.Table, error) { return h.facade.Free(c.Request.Context(), id) })
}

// List handles GET /api/tables.
func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.facade.ListTables(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.TableResponse, 0, len(tables))
	for _, t := range tables {
		response = append(response, toTableResponse(t))
	}
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/tables/:id.
func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteTable(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TableHandler) respond(c *gin.Context, load func() (*model.Table, error)) {
	table, err := load()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTableResponse(*table))
}

func toTableResponse(t model.Table) dto.TableResponse {
	return dto.TableResponse{
		ID:       t.ID,
		Number:   t.Number,
		Capacity: t.Capacity,
		Status:   string(t.Status),
		QRCode:   t.QRCode,
	}
}
