// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. The catalog is the source of truth for
// available inventory: stock is mutated only by order placement (decrement)
// and order deletion (restore), never edited directly alongside other fields.
type Product struct {
	ID          string          `json:"id"`          // Store-assigned opaque identifier.
	Name        string          `json:"name"`        // Display name.
	Price       decimal.Decimal `json:"price"`       // Unit price, non-negative.
	Stock       int             `json:"stock"`       // Units on hand, never negative after a committed transaction.
	Description string          `json:"description"` // Free-text description.
	ImageURL    string          `json:"image_url"`   // Public URL of the product image.
	Category    string          `json:"category"`    // Optional grouping label.
	CreatedAt   time.Time       `json:"created_at"`  // Server-assigned creation timestamp.
	UpdatedAt   time.Time       `json:"updated_at"`  // Timestamp of the last admin edit.
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
