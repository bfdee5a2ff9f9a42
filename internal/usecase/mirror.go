package usecase

import (
	"pixelstore/internal/domain/entity"
)

// CatalogMirror is a live in-process copy of the product collection fed by a
// snapshot listener. The boolean reports whether the mirror has received its
// first snapshot; callers fall back to direct reads until then.
type CatalogMirror interface {
	// Products returns the last catalog snapshot, newest first.
	Products() ([]*entity.Product, bool)

	// StockCeilings returns the per-product stock levels from the last
	// snapshot, used as cart quantity ceilings.
	StockCeilings() (entity.StockCeilings, bool)
}

// OrderMirror is a live in-process copy of the order collection.
type OrderMirror interface {
	// Orders returns the last order snapshot, newest first.
	Orders() ([]*entity.Order, bool)
}
