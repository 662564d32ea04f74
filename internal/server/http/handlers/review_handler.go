package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// ReviewHandler manages order reviews.
type ReviewHandler struct {
	facade ReviewFacade
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(facade ReviewFacade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Create handles POST /api/reviews. The review is filed under the order's client.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.facade.GetOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ensureOwner(c, order.ClientID) {
		return
	}

	review, err := h.facade.CreateReview(c.Request.Context(), order.ClientID, order.ID, req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(*review))
}

// List handles GET /api/reviews?order_id=.
func (h *ReviewHandler) List(c *gin.Context) {
	orderID, ok := queryID(c, "order_id")
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

	reviews, err := h.facade.ListReviews(c.Request.Context(), orderID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		response = append(response, toReviewResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/reviews/:id.
func (h *ReviewHandler) Get(c *gin.Context) {
	review, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// Update handles PUT /api/reviews/:id.
func (h *ReviewHandler) Update(c *gin.Context) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.facade.UpdateReview(c.Request.Context(), current.ID, req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// Delete handles DELETE /api/reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	review, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteReview(c.Request.Context(), review.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) load(c *gin.Context) (*model.Review, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	review, err := h.facade.GetReview(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !ensureOwner(c, review.ClientID) {
		return nil, false
	}
	return review, true
}

func toReviewResponse(r model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		ClientID:  r.ClientID,
		OrderID:   r.OrderID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
