package repository

import (
	"context"

	"pixelstore/internal/domain/entity"
	"pixelstore/internal/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber is returned when a generated order number is
	// already taken by an existing order.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// OrderRepository defines the interface for order-related store operations.
type OrderRepository interface {
	// CreateOrder persists a new order and assigns its ID.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order by its internal ID.
	FindOrderByID(ctx context.Context, id string) (*entity.Order, error)

	// FindOrderByNumber retrieves an order by its human-facing order number.
	FindOrderByNumber(ctx context.Context, number string) (*entity.Order, error)

	// ListOrders retrieves all orders, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateOrderStatus writes a new status on a single order document.
	// It does not validate the transition; that is the usecase's concern.
	UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error

	// DeleteOrder removes an order by its internal ID.
	DeleteOrder(ctx context.Context, id string) error
}

// OrderWatcher delivers the full current order list on every committed change.
type OrderWatcher interface {
	// WatchOrders invokes handler with all orders after each change. It
	// returns a stop function that cancels the subscription.
	WatchOrders(ctx context.Context, handler func(orders []*entity.Order)) (stop func(), err error)
}
