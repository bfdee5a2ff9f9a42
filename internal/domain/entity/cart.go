package entity

import (
	"math"

	"github.com/shopspring/decimal"
)

// ErrCapacityExceeded is raised when a cart mutation would push a line's
// quantity past the product's live stock. The cart stays unchanged.
type ErrCapacityExceeded struct {
	ProductID string
	Requested int
	Stock     int
}

func (e *ErrCapacityExceeded) Error() string {
	return "requested quantity exceeds available stock"
}

// CartLine is one chosen product inside a cart. It carries a snapshot of the
// product at the moment it was added; later catalog edits do not touch it.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"` // Always >= 1 while the line exists.
}

// Subtotal returns price multiplied by quantity.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// StockCeilings maps product IDs to their live stock. It is the snapshot a
// cart validates quantities against; the authoritative check still happens in
// the placement transaction.
type StockCeilings map[string]int

// CeilingFor returns the stock ceiling for a product. Products missing from
// the snapshot get an effectively unbounded ceiling.
func (s StockCeilings) CeilingFor(productID string) int {
	if ceiling, ok := s[productID]; ok {
		return ceiling
	}

	return math.MaxInt
}

// Cart is the ephemeral, session-scoped aggregation of chosen products.
// It is never persisted and is cleared on checkout success.
type Cart struct {
	Lines []*CartLine `json:"lines"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem puts one unit of the product into the cart. If a line for the
// product already exists its quantity grows by one unless that would exceed
// the product's stock, in which case the cart is left unchanged and an
// ErrCapacityExceeded is returned. A first add always succeeds; rejecting
// out-of-stock products on first add is the calling layer's concern.
func (c *Cart) AddItem(product *Product) error {
	if line := c.line(product.ID); line != nil {
		if line.Quantity+1 > product.Stock {
			return &ErrCapacityExceeded{ProductID: product.ID, Requested: line.Quantity + 1, Stock: product.Stock}
		}
		line.Quantity++

		return nil
	}

	c.Lines = append(c.Lines, &CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  1,
	})

	return nil
}

// ChangeQuantity adjusts a line's quantity by delta. The new quantity is
// clamped to a minimum of 1; decrementing below 1 is a no-op rather than a
// removal. If the new quantity would exceed the live stock from the catalog
// snapshot the change is rejected with ErrCapacityExceeded and the quantity
// stays unchanged.
func (c *Cart) ChangeQuantity(productID string, delta int, ceilings StockCeilings) error {
	line := c.line(productID)
	if line == nil {
		return nil
	}

	newQty := line.Quantity + delta
	if newQty < 1 {
		newQty = 1
	}

	if ceiling := ceilings.CeilingFor(productID); newQty > ceiling {
		return &ErrCapacityExceeded{ProductID: productID, Requested: newQty, Stock: ceiling}
	}

	line.Quantity = newQty

	return nil
}

// RemoveItem deletes the line for the product unconditionally.
func (c *Cart) RemoveItem(productID string) {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)

			return
		}
	}
}

// Total sums price times quantity over all lines. Pure; recomputed on demand.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}

	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}

	return count
}

func (c *Cart) line(productID string) *CartLine {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line
		}
	}

	return nil
}
