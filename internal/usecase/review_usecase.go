package usecase

import (
	"context"

	"pixelstore/internal/domain/entity"
)

// SubmitReviewInput carries a review submission.
type SubmitReviewInput struct {
	OrderNumber  string
	CustomerName string
	Ratings      entity.Ratings
	Comment      string
}

// ReviewUsecase defines the interface for the review gate use cases.
type ReviewUsecase interface {
	// VerifyOrder checks that an order number names a real, not yet reviewed
	// order and returns it. Not-found and already-reviewed are distinct errors.
	VerifyOrder(ctx context.Context, orderNumber string) (*entity.Order, error)

	// SubmitReview validates ratings and persists the review. Uniqueness per
	// order is enforced again at write time.
	SubmitReview(ctx context.Context, input *SubmitReviewInput) (*entity.Review, error)

	// ListReviews retrieves all reviews, newest first.
	ListReviews(ctx context.Context) ([]*entity.Review, error)

	// DeleteReview removes a review by its ID.
	DeleteReview(ctx context.Context, id string) error
}
