package usecase

import (
	"context"

	"pixelstore/internal/domain/entity"
)

// CheckoutInput carries everything checkout needs beyond the session cart.
type CheckoutInput struct {
	SessionID string
	Customer  entity.CustomerInfo
}

// CheckoutResult is returned after a successful checkout. The confirmation
// message and chat link implement the payment handoff to the operator; the
// QR code is a PNG encoding of the chat link.
type CheckoutResult struct {
	Order               *entity.Order
	ConfirmationMessage string
	ChatLink            string
	QRCode              []byte
}

// OrderUsecase defines the interface for order management use cases.
type OrderUsecase interface {
	// Checkout places an order from the session cart: generates a unique
	// order number, atomically creates the order and reserves stock, then
	// clears the cart and fires a best-effort order-placed event.
	Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error)

	// GetOrder retrieves an order by its document ID.
	GetOrder(ctx context.Context, id string) (*entity.Order, error)

	// ListOrders retrieves all orders, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// AdvanceStatus moves an order one step along pending -> shipped ->
	// delivered. Any other move is rejected without a write.
	AdvanceStatus(ctx context.Context, orderID string, next entity.OrderStatus) (*entity.Order, error)

	// DeleteOrder removes an order and restores the reserved stock, both in
	// one transaction.
	DeleteOrder(ctx context.Context, orderID string) error
}
