package handler

import (
	"log/slog"
	"net/http"

	"pixelstore/internal/delivery/http/response"
	"pixelstore/internal/domain/entity"
	"pixelstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler serves the review gate: verify an order number, submit a
// review, browse the review wall.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitReviewRequest struct {
	OrderNumber  string `json:"order_number" validate:"required"`
	CustomerName string `json:"customer_name"`
	Delivery     int    `json:"delivery" validate:"required"`
	Service      int    `json:"service" validate:"required"`
	Quality      int    `json:"quality" validate:"required"`
	Comment      string `json:"comment"`
}

// VerifyOrder checks that an order number is real and not yet reviewed,
// returning the matched order so the form can pre-fill customer details.
func (h *ReviewHandler) VerifyOrder(c echo.Context) error {
	order, err := h.uc.VerifyOrder(c.Request().Context(), c.Param("orderNumber"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order verified")
}

// SubmitReview persists a verified review.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	var req *submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	review, err := h.uc.SubmitReview(c.Request().Context(), &usecase.SubmitReviewInput{
		OrderNumber:  req.OrderNumber,
		CustomerName: req.CustomerName,
		Ratings: entity.Ratings{
			Delivery: req.Delivery,
			Service:  req.Service,
			Quality:  req.Quality,
		},
		Comment: req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Review submitted successfully")
}

// ListReviews handles the public review wall, newest first.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.uc.ListReviews(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "Reviews retrieved successfully")
}

// DeleteReview handles the admin review takedown.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	if err := h.uc.DeleteReview(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted successfully")
}
