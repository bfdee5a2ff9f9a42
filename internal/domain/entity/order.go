package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through its lifecycle. Status only advances
// forward; there is no cancel state, deletion is the only reversal.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether advancing from s to next is allowed.
// The only legal transitions are pending->shipped and shipped->delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// OrderLine is an immutable snapshot of a purchased product at submission
// time, independent of later catalog edits.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price multiplied by quantity.
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CustomerInfo is the contact information captured on the checkout form.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is a persisted purchase. Total and line snapshots are immutable once
// the order is created; only Status may change afterwards.
type Order struct {
	ID        string          `json:"id"`         // Store-assigned internal identifier.
	Number    string          `json:"number"`     // Human-facing order number, fixed digit length.
	Lines     []OrderLine     `json:"lines"`      // Snapshot of the cart at purchase time.
	Total     decimal.Decimal `json:"total"`      // Sum of line subtotals at submission time.
	Customer  CustomerInfo    `json:"customer"`   // Checkout contact info.
	Status    OrderStatus     `json:"status"`     // pending -> shipped -> delivered.
	CreatedAt time.Time       `json:"created_at"` // Server-assigned commit timestamp.
}

// LinesFromCart snapshots every cart line into immutable order lines.
func LinesFromCart(cart *Cart) []OrderLine {
	lines := make([]OrderLine, 0, len(cart.Lines))
	for _, item := range cart.Lines {
		lines = append(lines, OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return lines
}

// ProductSummary joins the purchased product names for display, e.g. on a
// review referencing this order.
func (o *Order) ProductSummary() string {
	summary := ""
	for i, line := range o.Lines {
		if i > 0 {
			summary += ", "
		}
		summary += line.Name
	}

	return summary
}
