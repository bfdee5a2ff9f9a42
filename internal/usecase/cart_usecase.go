package usecase

import (
	"context"

	"pixelstore/internal/domain/entity"
)

// CartUsecase defines the interface for session cart management use cases.
// Carts live in memory only; the session ID is an opaque caller-chosen key.
type CartUsecase interface {
	// GetCart returns the cart for a session, creating an empty one if needed.
	GetCart(sessionID string) *entity.Cart

	// AddToCart adds one unit of a product to the session cart. An existing
	// line grows by one unless that would exceed the product's current stock.
	AddToCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error)

	// ChangeQuantity adjusts a line by delta, clamped to a floor of one and
	// capped by the product's current stock.
	ChangeQuantity(ctx context.Context, sessionID, productID string, delta int) (*entity.Cart, error)

	// RemoveFromCart drops a line unconditionally.
	RemoveFromCart(sessionID, productID string) *entity.Cart

	// ClearCart empties the session cart.
	ClearCart(sessionID string)
}
