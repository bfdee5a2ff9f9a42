package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keycaps(stock int) *Product {
	return &Product{
		ID:    "p-keycaps",
		Name:  "Keycap Set",
		Price: decimal.RequireFromString("25.00"),
		Stock: stock,
	}
}

func TestCart_AddItem_GrowsUpToStock(t *testing.T) {
	cart := NewCart()
	product := keycaps(3)

	for i := 0; i < 3; i++ {
		require.NoError(t, cart.AddItem(product))
	}
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	err := cart.AddItem(product)
	var capacityErr *ErrCapacityExceeded
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, 4, capacityErr.Requested)
	assert.Equal(t, 3, capacityErr.Stock)

	// Rejected add leaves the quantity unchanged.
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCart_AddItem_FirstAddIgnoresStock(t *testing.T) {
	cart := NewCart()

	require.NoError(t, cart.AddItem(keycaps(0)))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCart_AddItem_SnapshotsProduct(t *testing.T) {
	cart := NewCart()
	product := keycaps(3)
	require.NoError(t, cart.AddItem(product))

	product.Price = decimal.RequireFromString("99.99")
	product.Name = "Renamed"

	assert.Equal(t, "Keycap Set", cart.Lines[0].Name)
	assert.True(t, cart.Lines[0].Price.Equal(decimal.RequireFromString("25.00")))
}

func TestCart_ChangeQuantity_ClampsToOne(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(keycaps(5)))

	require.NoError(t, cart.ChangeQuantity("p-keycaps", -3, StockCeilings{"p-keycaps": 5}))
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCart_ChangeQuantity_RejectsAboveCeiling(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(keycaps(5)))
	require.NoError(t, cart.ChangeQuantity("p-keycaps", 1, StockCeilings{"p-keycaps": 2}))

	err := cart.ChangeQuantity("p-keycaps", 1, StockCeilings{"p-keycaps": 2})
	var capacityErr *ErrCapacityExceeded
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCart_ChangeQuantity_MissingCeilingIsUnbounded(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(keycaps(5)))

	require.NoError(t, cart.ChangeQuantity("p-keycaps", 100, StockCeilings{}))
	assert.Equal(t, 101, cart.Lines[0].Quantity)
}

func TestCart_ChangeQuantity_UnknownLineIsNoop(t *testing.T) {
	cart := NewCart()

	require.NoError(t, cart.ChangeQuantity("missing", 1, StockCeilings{}))
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(keycaps(3)))
	require.NoError(t, cart.AddItem(&Product{ID: "p-mat", Name: "Deskmat", Price: decimal.RequireFromString("18.50"), Stock: 2}))

	cart.RemoveItem("p-keycaps")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p-mat", cart.Lines[0].ProductID)

	// Removing an absent line is harmless.
	cart.RemoveItem("p-keycaps")
	assert.Len(t, cart.Lines, 1)
}

func TestCart_TotalAndItemCount(t *testing.T) {
	cart := NewCart()
	product := keycaps(5)
	require.NoError(t, cart.AddItem(product))
	require.NoError(t, cart.AddItem(product))
	require.NoError(t, cart.AddItem(&Product{ID: "p-mat", Name: "Deskmat", Price: decimal.RequireFromString("18.50"), Stock: 2}))

	assert.True(t, cart.Total().Equal(decimal.RequireFromString("68.50")))
	assert.Equal(t, 3, cart.ItemCount())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().Equal(decimal.Zero))
}
