package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// ReviewUseCase gates reviews on settled orders.
type ReviewUseCase struct {
	store repository.Factory
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(store repository.Factory) *ReviewUseCase {
	return &ReviewUseCase{store: store}
}

func checkRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return domainErrors.RuleViolation("rating must be between 1 and 5")
	}
	return nil
}

// CreateReview records the single review allowed for a paid order.
func (u *ReviewUseCase) CreateReview(ctx context.Context, clientID, orderID int64, rating int, comment string) (*model.Review, error) {
	if err := checkRating(rating); err != nil {
		return nil, err
	}

	order, err := u.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPaid {
		return nil, domainErrors.RuleViolation("only paid orders can be reviewed")
	}

	if _, err := u.store.Reviews().GetByOrder(ctx, orderID); err == nil {
		return nil, domainErrors.RuleViolation("order already reviewed")
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	review, err := u.store.Reviews().Create(ctx, &model.Review{
		ClientID: clientID,
		OrderID:  orderID,
		Rating:   rating,
		Comment:  comment,
	})
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil, domainErrors.RuleViolation("order already reviewed")
	}
	return review, err
}

// UpdateReview changes rating and comment.
func (u *ReviewUseCase) UpdateReview(ctx context.Context, id int64, rating int, comment string) (*model.Review, error) {
	if err := checkRating(rating); err != nil {
		return nil, err
	}
	review, err := u.store.Reviews().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	review.Rating = rating
	review.Comment = comment
	if err := u.store.Reviews().Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetReview returns a review by id.
func (u *ReviewUseCase) GetReview(ctx context.Context, id int64) (*model.Review, error) {
	return u.store.Reviews().GetByID(ctx, id)
}

// ListReviews returns reviews, optionally for one order.
func (u *ReviewUseCase) ListReviews(ctx context.Context, orderID *int64, limit, offset int) ([]model.Review, error) {
	return u.store.Reviews().List(ctx, orderID, limit, offset)
}

// DeleteReview removes a review.
func (u *ReviewUseCase) DeleteReview(ctx context.Context, id int64) error {
	return u.store.Reviews().Delete(ctx, id)
}
