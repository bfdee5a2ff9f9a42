package repository

import (
	"context"

	"pixelstore/internal/domain/entity"
	"pixelstore/internal/errors"
)

// Domain-specific errors for review persistence.
var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when an order number already has a review.
	ErrDuplicateReview = errors.New("order already reviewed")
)

// ReviewRepository defines the interface for review-related store operations.
//
// A review's ID is its order number: CreateReview stores the review under the
// reviewed order's number, which is what makes the one-review-per-order rule
// a create-time conflict rather than a separate lookup. Callers may therefore
// pass an order number wherever an ID is expected.
type ReviewRepository interface {
	// CreateReview persists a new review under its order number, returning
	// ErrDuplicateReview when that order is already reviewed.
	CreateReview(ctx context.Context, review *entity.Review) error

	// FindReviewByOrderNumber retrieves the review referencing an order
	// number, or ErrReviewNotFound when none exists.
	FindReviewByOrderNumber(ctx context.Context, orderNumber string) (*entity.Review, error)

	// ListReviews retrieves all reviews, newest first.
	ListReviews(ctx context.Context) ([]*entity.Review, error)

	// DeleteReview removes a review by its ID, which equals the reviewed
	// order's number.
	DeleteReview(ctx context.Context, id string) error
}
