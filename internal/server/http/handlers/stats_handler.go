package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// StatsHandler serves manager statistics.
type StatsHandler struct {
	facade StatsFacade
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(facade StatsFacade) *StatsHandler {
	return &StatsHandler{facade: facade}
}

// Global handles GET /api/stats/global.
func (h *StatsHandler) Global(c *gin.Context) {
	stats, err := h.facade.Global(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGlobalStatsResponse(*stats))
}

// TopDishes handles GET /api/stats/top-dishes?limit=.
func (h *StatsHandler) TopDishes(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	dishes, err := h.facade.TopDishes(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDishPopularity(dishes))
}

// Revenue handles GET /api/stats/revenue.
func (h *StatsHandler) Revenue(c *gin.Context) {
	days, err := h.facade.RevenueByDay(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDailyRevenue(days))
}

// Dashboard handles GET /api/stats/dashboard.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		Global:    toGlobalStatsResponse(dashboard.Global),
		TopDishes: toDishPopularity(dashboard.TopDishes),
		Revenue:   toDailyRevenue(dashboard.Revenue),
	})
}

func toGlobalStatsResponse(s model.GlobalStats) dto.GlobalStatsResponse {
	return dto.GlobalStatsResponse{
		Revenue:       s.Revenue,
		PaidOrders:    s.PaidOrders,
		AverageRating: s.AverageRating,
	}
}

func toDishPopularity(dishes []model.DishPopularity) []dto.DishPopularityResponse {
	out := make([]dto.DishPopularityResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, dto.DishPopularityResponse{DishID: d.DishID, Name: d.Name, Quantity: d.Quantity})
	}
	return out
}

func toDailyRevenue(days []model.DailyRevenue) []dto.DailyRevenueResponse {
	out := make([]dto.DailyRevenueResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailyRevenueResponse{Day: d.Day, Revenue: d.Revenue})
	}
	return out
}
