package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// CatalogHandler exposes categories, dishes and menus.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// ListCategories handles GET /api/catalog/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.facade.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, toCategoryResponse(cat))
	}
	c.JSON(http.StatusOK, response)
}

// GetCategory handles GET /api/catalog/categories/:id.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.facade.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(*category))
}

// CreateCategory handles POST /api/catalog/categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	category, err := h.facade.CreateCategory(c.Request.Context(), model.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// UpdateCategory handles PUT /api/catalog/categories/:id.
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	category, err := h.facade.UpdateCategory(c.Request.Context(), model.Category{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(*category))
}

// DeleteCategory handles DELETE /api/catalog/categories/:id.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	h.remove(c, h.facade.DeleteCategory)
}

// ListDishes handles GET /api/catalog/dishes?category_id=&available=.
func (h *CatalogHandler) ListDishes(c *gin.Context) {
	categoryID, ok := queryID(c, "category_id")
	if !ok {
		return
	}
	filter := repository.DishFilter{CategoryID: categoryID}
	if raw := c.Query("available"); raw != "" {
		only, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, errors.New("invalid available"))
			return
		}
		filter.AvailableOnly = only
	}

	dishes, err := h.facade.ListDishes(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		response = append(response, toDishResponse(d))
	}
	c.JSON(http.StatusOK, response)
}

// GetDish handles GET /api/catalog/dishes/:id.
func (h *CatalogHandler) GetDish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dish, err := h.facade.GetDish(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDishResponse(*dish))
}

// CreateDish handles POST /api/catalog/dishes. Dishes are available unless
// stated otherwise.
func (h *CatalogHandler) CreateDish(c *gin.Context) {
	var req dto.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	dish, err := h.facade.CreateDish(c.Request.Context(), fromDishRequest(req, true))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDishResponse(*dish))
}

// UpdateDish handles PUT /api/catalog/dishes/:id.
func (h *CatalogHandler) UpdateDish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	current, err := h.facade.GetDish(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	dish := fromDishRequest(req, current.Available)
	dish.ID = id
	updated, err := h.facade.UpdateDish(c.Request.Context(), dish)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDishResponse(*updated))
}

// DeleteDish handles DELETE /api/catalog/dishes/:id.
func (h *CatalogHandler) DeleteDish(c *gin.Context) {
	h.remove(c, h.facade.DeleteDish)
}

// ListMenus handles GET /api/catalog/menus.
func (h *CatalogHandler) ListMenus(c *gin.Context) {
	menus, err := h.facade.ListMenus(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.MenuResponse, 0, len(menus))
	for _, m := range menus {
		response = append(response, toMenuResponse(m))
	}
	c.JSON(http.StatusOK, response)
}

// GetMenu handles GET /api/catalog/menus/:id.
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	menu, err := h.facade.GetMenu(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuResponse(*menu))
}

// CreateMenu handles POST /api/catalog/menus.
func (h *CatalogHandler) CreateMenu(c *gin.Context) {
	var req dto.MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	menu, err := h.facade.CreateMenu(c.Request.Context(), fromMenuRequest(req, true))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMenuResponse(*menu))
}

// UpdateMenu handles PUT /api/catalog/menus/:id. Dish membership is managed
// through the dedicated sub-resource.
func (h *CatalogHandler) UpdateMenu(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	current, err := h.facade.GetMenu(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	menu := fromMenuRequest(req, current.Active)
	menu.ID = id
	updated, err := h.facade.UpdateMenu(c.Request.Context(), menu)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuResponse(*updated))
}

// DeleteMenu handles DELETE /api/catalog/menus/:id.
func (h *CatalogHandler) DeleteMenu(c *gin.Context) {
	h.remove(c, h.facade.DeleteMenu)
}

// AddMenuDish handles POST /api/catalog/menus/:id/dishes/:dish_id.
func (h *CatalogHandler) AddMenuDish(c *gin.Context) {
	h.membership(c, h.facade.AddMenuDish)
}

// RemoveMenuDish handles DELETE /api/catalog/menus/:id/dishes/:dish_id.
func (h *CatalogHandler) RemoveMenuDish(c *gin.Context) {
	h.membership(c, h.facade.RemoveMenuDish)
}

func (h *CatalogHandler) membership(c *gin.Context, apply func(ctx context.Context, menuID, dishID int64) error) {
	menuID, ok := pathID(c, "id")
	if !ok {
		return
	}
	dishID, ok := pathID(c, "dish_id")
	if !ok {
		return
	}
	if err := apply(c.Request.Context(), menuID, dishID); err != nil {
		writeError(c, err)
		return
	}

	menu, err := h.facade.GetMenu(c.Request.Context(), menuID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuResponse(*menu))
}

func (h *CatalogHandler) remove(c *gin.Context, del func(ctx context.Context, id int64) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func fromDishRequest(req dto.DishRequest, available bool) model.Dish {
	if req.Available != nil {
		available = *req.Available
	}
	return model.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Available:   available,
		PrepMinutes: req.PrepMinutes,
	}
}

func fromMenuRequest(req dto.MenuRequest, active bool) model.Menu {
	if req.Active != nil {
		active = *req.Active
	}
	return model.Menu{
		Name:        req.Name,
		Description: req.Description,
		FixedPrice:  req.FixedPrice,
		Active:      active,
		DishIDs:     req.DishIDs,
	}
}

func toCategoryResponse(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func toDishResponse(d model.Dish) dto.DishResponse {
	return dto.DishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		CategoryID:  d.CategoryID,
		ImageURL:    d.ImageURL,
		Available:   d.Available,
		PrepMinutes: d.PrepMinutes,
	}
}

func toMenuResponse(m model.Menu) dto.MenuResponse {
	dishIDs := m.DishIDs
	if dishIDs == nil {
		dishIDs = []int64{}
	}
	return dto.MenuResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		FixedPrice:  m.FixedPrice,
		Active:      m.Active,
		DishIDs:     dishIDs,
	}
}
