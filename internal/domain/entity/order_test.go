package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusShipped.Valid())
	assert.True(t, OrderStatusDelivered.Valid())
	assert.False(t, OrderStatus("cancelled").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestLinesFromCart(t *testing.T) {
	cart := NewCart()
	product := keycaps(5)
	require.NoError(t, cart.AddItem(product))
	require.NoError(t, cart.AddItem(product))

	lines := LinesFromCart(cart)
	require.Len(t, lines, 1)
	assert.Equal(t, "p-keycaps", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].Subtotal().Equal(decimal.RequireFromString("50.00")))
}

func TestOrder_ProductSummary(t *testing.T) {
	order := &Order{
		Lines: []OrderLine{
			{Name: "Keycap Set"},
			{Name: "Deskmat"},
		},
	}
	assert.Equal(t, "Keycap Set, Deskmat", order.ProductSummary())

	assert.Equal(t, "", (&Order{}).ProductSummary())
}
