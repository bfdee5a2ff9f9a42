package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"pixelstore/internal/delivery/http/response"
	"pixelstore/internal/domain/entity"
	"pixelstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves checkout and the admin order console.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

type checkoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// checkoutResponse is the payment handoff returned after a successful
// checkout. The QR code is a base64 PNG of the chat link.
type checkoutResponse struct {
	Order               *entity.Order `json:"order"`
	ConfirmationMessage string        `json:"confirmation_message"`
	ChatLink            string        `json:"chat_link,omitempty"`
	QRCode              string        `json:"qr_code,omitempty"`
}

type advanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Checkout places an order from the caller's session cart.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req *checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	result, err := h.uc.Checkout(c.Request().Context(), &usecase.CheckoutInput{
		SessionID: sessionID(c),
		Customer: entity.CustomerInfo{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	payload := &checkoutResponse{
		Order:               result.Order,
		ConfirmationMessage: result.ConfirmationMessage,
		ChatLink:            result.ChatLink,
	}
	if len(result.QRCode) > 0 {
		payload.QRCode = base64.StdEncoding.EncodeToString(result.QRCode)
	}

	return response.Success(c, http.StatusCreated, payload, "Order placed successfully")
}

// GetOrder handles an admin single-order request.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.uc.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListOrders handles the admin order listing, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// AdvanceStatus moves an order one step along its lifecycle.
func (h *OrderHandler) AdvanceStatus(c echo.Context) error {
	var req *advanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	order, err := h.uc.AdvanceStatus(c.Request().Context(), c.Param("id"), entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// DeleteOrder removes an order and restores its reserved stock.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	if err := h.uc.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted successfully")
}
