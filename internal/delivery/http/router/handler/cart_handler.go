package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"pixelstore/internal/delivery/http/response"
	"pixelstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler serves the session cart endpoints.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// GetCart returns the cart for the caller's session.
func (h *CartHandler) GetCart(c echo.Context) error {
	cart := h.uc.GetCart(sessionID(c))

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// AddItem adds one unit of a product to the session cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req *addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	cart, err := h.uc.AddToCart(c.Request().Context(), sessionID(c), req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item added to cart")
}

// ChangeQuantity adjusts a cart line by the "delta" query parameter, e.g.
// delta=1 for the plus stepper and delta=-1 for the minus stepper.
func (h *CartHandler) ChangeQuantity(c echo.Context) error {
	delta, err := strconv.Atoi(c.QueryParam("delta"))
	if err != nil || delta == 0 {
		return response.BadRequest(c, "INVALID_INPUT", "delta must be a non-zero integer")
	}

	cart, err := h.uc.ChangeQuantity(c.Request().Context(), sessionID(c), c.Param("productID"), delta)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart updated")
}

// RemoveItem drops a cart line unconditionally.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart := h.uc.RemoveFromCart(sessionID(c), c.Param("productID"))

	return response.Success(c, http.StatusOK, cart, "Item removed from cart")
}

// ClearCart empties the session cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	h.uc.ClearCart(sessionID(c))

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
