// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"pixelstore/internal/domain/entity"
	"pixelstore/internal/errors"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock reservation would drive
	// a product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockAdjustment names a product and the quantity to reserve or restore.
type StockAdjustment struct {
	ProductID string
	Quantity  int
}

// ProductRepository defines the interface for catalog-related store operations.
type ProductRepository interface {
	// CreateProduct persists a new product and assigns its ID.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product by its ID.
	FindProductByID(ctx context.Context, id string) (*entity.Product, error)

	// ListProducts retrieves the full catalog.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// UpdateProduct overwrites a product's editable fields. Stock is written
	// as-is; callers other than the order processor must pass the value they
	// read, not a computed adjustment.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// DeleteProduct removes a product by its ID.
	DeleteProduct(ctx context.Context, id string) error

	// ReserveStock atomically decrements stock for every adjustment using the
	// store's relative increment primitive, after verifying that no product
	// would go negative. Returns ErrInsufficientStock when any product cannot
	// cover its quantity; no stock is changed in that case.
	ReserveStock(ctx context.Context, adjustments []StockAdjustment) error

	// RestoreStock atomically increments stock for every adjustment,
	// reversing an earlier reservation.
	RestoreStock(ctx context.Context, adjustments []StockAdjustment) error
}

// ProductWatcher delivers the full current catalog snapshot on every committed
// change, from any client. The in-memory view built from it is an eventually
// consistent mirror, not authoritative state.
type ProductWatcher interface {
	// WatchProducts invokes handler with the complete catalog after each
	// change. It returns a stop function that cancels the subscription.
	WatchProducts(ctx context.Context, handler func(products []*entity.Product)) (stop func(), err error)
}
