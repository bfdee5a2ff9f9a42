package impl

import (
	"context"
	"testing"

	"pixelstore/internal/domain/entity"
	domainerrors "pixelstore/internal/domain/errors"
	"pixelstore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewTestEnv struct {
	orders    *fakeOrderRepo
	reviews   *fakeReviewRepo
	reviewSvc usecase.ReviewUsecase
}

func newReviewTestEnv(t *testing.T) *reviewTestEnv {
	t.Helper()

	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	reviews := newFakeReviewRepo()

	reviewSvc := NewReviewService(ReviewServiceParams{
		TxManager:  &fakeTxManager{products: products, orders: orders, reviews: reviews},
		OrderRepo:  orders,
		ReviewRepo: reviews,
		Logger:     testLogger(),
	})

	return &reviewTestEnv{orders: orders, reviews: reviews, reviewSvc: reviewSvc}
}

func (e *reviewTestEnv) seedOrder(t *testing.T, number string) *entity.Order {
	t.Helper()

	order := &entity.Order{
		Number: number,
		Lines: []entity.OrderLine{
			{ProductID: "p-1", Name: "Keycap Set", Price: decimal.RequireFromString("25.00"), Quantity: 2},
			{ProductID: "p-2", Name: "Deskmat", Price: decimal.RequireFromString("18.50"), Quantity: 1},
		},
		Total:    decimal.RequireFromString("68.50"),
		Customer: entity.CustomerInfo{Name: "Alex"},
		Status:   entity.OrderStatusDelivered,
	}
	require.NoError(t, e.orders.CreateOrder(context.Background(), order))

	return order
}

func validRatings() entity.Ratings {
	return entity.Ratings{Delivery: 5, Service: 4, Quality: 5}
}

func TestReviewService_VerifyOrder_NotFound(t *testing.T) {
	env := newReviewTestEnv(t)

	_, err := env.reviewSvc.VerifyOrder(context.Background(), "12345678")
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_NOT_FOUND", appErr.ErrorCode())
}

func TestReviewService_VerifyOrder_AlreadyReviewed(t *testing.T) {
	env := newReviewTestEnv(t)
	order := env.seedOrder(t, "12345678")

	_, err := env.reviewSvc.SubmitReview(context.Background(), &usecase.SubmitReviewInput{
		OrderNumber: order.Number,
		Ratings:     validRatings(),
	})
	require.NoError(t, err)

	_, err = env.reviewSvc.VerifyOrder(context.Background(), order.Number)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_REVIEWED", appErr.ErrorCode())
}

func TestReviewService_VerifyOrder_Eligible(t *testing.T) {
	env := newReviewTestEnv(t)
	seeded := env.seedOrder(t, "12345678")

	order, err := env.reviewSvc.VerifyOrder(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, order.ID)
}

func TestReviewService_SubmitReview_InvalidRatings(t *testing.T) {
	env := newReviewTestEnv(t)
	env.seedOrder(t, "12345678")

	for _, ratings := range []entity.Ratings{
		{Delivery: 0, Service: 4, Quality: 5},
		{Delivery: 5, Service: 6, Quality: 5},
		{Delivery: 5, Service: 4, Quality: -1},
	} {
		_, err := env.reviewSvc.SubmitReview(context.Background(), &usecase.SubmitReviewInput{
			OrderNumber: "12345678",
			Ratings:     ratings,
		})
		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_RATING", appErr.ErrorCode())
	}
}

func TestReviewService_SubmitReview_Success(t *testing.T) {
	env := newReviewTestEnv(t)
	env.seedOrder(t, "12345678")

	review, err := env.reviewSvc.SubmitReview(context.Background(), &usecase.SubmitReviewInput{
		OrderNumber: "12345678",
		Ratings:     validRatings(),
		Comment:     "Great service",
	})
	require.NoError(t, err)

	// Customer name defaults to the order's, product names are snapshotted.
	assert.Equal(t, "Alex", review.CustomerName)
	assert.Equal(t, "Keycap Set, Deskmat", review.ProductSummary)
	assert.Equal(t, "Great service", review.Comment)

	stored, err := env.reviews.FindReviewByOrderNumber(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, review.CustomerName, stored.CustomerName)
}

func TestReviewService_SubmitReview_Duplicate(t *testing.T) {
	env := newReviewTestEnv(t)
	env.seedOrder(t, "12345678")

	_, err := env.reviewSvc.SubmitReview(context.Background(), &usecase.SubmitReviewInput{
		OrderNumber: "12345678",
		Ratings:     validRatings(),
	})
	require.NoError(t, err)

	_, err = env.reviewSvc.SubmitReview(context.Background(), &usecase.SubmitReviewInput{
		OrderNumber: "12345678",
		Ratings:     validRatings(),
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_REVIEWED", appErr.ErrorCode())

	reviews, err := env.reviewSvc.ListReviews(context.Background())
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestReviewService_SubmitReview_OrderNotFound(t *testing.T) {
	env := newReviewTestEnv(t)

	_, err := env.reviewSvc.SubmitReview(context.Background(), &usecase.SubmitReviewInput{
		OrderNumber: "00000000",
		Ratings:     validRatings(),
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_NOT_FOUND", appErr.ErrorCode())
}

func TestReviewService_DeleteReview(t *testing.T) {
	env := newReviewTestEnv(t)
	env.seedOrder(t, "12345678")

	review, err := env.reviewSvc.SubmitReview(context.Background(), &usecase.SubmitReviewInput{
		OrderNumber: "12345678",
		Ratings:     validRatings(),
	})
	require.NoError(t, err)

	require.NoError(t, env.reviewSvc.DeleteReview(context.Background(), review.ID))

	// The order becomes reviewable again.
	_, err = env.reviewSvc.VerifyOrder(context.Background(), "12345678")
	require.NoError(t, err)

	err = env.reviewSvc.DeleteReview(context.Background(), review.ID)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REVIEW_NOT_FOUND", appErr.ErrorCode())
}
