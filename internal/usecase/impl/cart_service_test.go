package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pixelstore/internal/domain/entity"
	domainerrors "pixelstore/internal/domain/errors"
	"pixelstore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCartService(products *fakeProductRepo, mirror usecase.CatalogMirror) usecase.CartUsecase {
	return NewCartService(CartServiceParams{
		ProductRepo: products,
		Mirror:      mirror,
		Logger:      testLogger(),
	})
}

func seedProduct(t *testing.T, repo *fakeProductRepo, name string, price string, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, repo.CreateProduct(context.Background(), product))

	return product
}

func TestCartService_AddToCart_NewLine(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})
	product := seedProduct(t, products, "Keycap Set", "25.00", 3)

	cart, err := cartSvc.AddToCart(context.Background(), "sess-1", product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
	assert.Equal(t, "Keycap Set", cart.Lines[0].Name)
}

func TestCartService_AddToCart_StockLimit(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})
	product := seedProduct(t, products, "Keycap Set", "25.00", 3)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := cartSvc.AddToCart(ctx, "sess-1", product.ID)
		require.NoError(t, err)
	}

	// The fourth unit exceeds the stock of three.
	_, err := cartSvc.AddToCart(ctx, "sess-1", product.ID)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CAPACITY_EXCEEDED", appErr.ErrorCode())

	// The cart is left unchanged.
	cart := cartSvc.GetCart("sess-1")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})

	_, err := cartSvc.AddToCart(context.Background(), "sess-1", "missing")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", appErr.ErrorCode())
}

func TestCartService_ChangeQuantity_FloorOfOne(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})
	product := seedProduct(t, products, "Deskmat", "18.50", 5)

	ctx := context.Background()
	_, err := cartSvc.AddToCart(ctx, "sess-1", product.ID)
	require.NoError(t, err)

	// Decrementing at quantity one stays at one instead of removing the line.
	cart, err := cartSvc.ChangeQuantity(ctx, "sess-1", product.ID, -1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCartService_ChangeQuantity_CeilingFromMirror(t *testing.T) {
	products := newFakeProductRepo()
	product := seedProduct(t, products, "Deskmat", "18.50", 5)
	mirror := &fakeCatalogMirror{
		ceilings: entity.StockCeilings{product.ID: 2},
		ready:    true,
	}
	cartSvc := newTestCartService(products, mirror)

	ctx := context.Background()
	_, err := cartSvc.AddToCart(ctx, "sess-1", product.ID)
	require.NoError(t, err)

	_, err = cartSvc.ChangeQuantity(ctx, "sess-1", product.ID, 1)
	require.NoError(t, err)

	// The mirror says only two are left even though the store has five.
	_, err = cartSvc.ChangeQuantity(ctx, "sess-1", product.ID, 1)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CAPACITY_EXCEEDED", appErr.ErrorCode())

	cart := cartSvc.GetCart("sess-1")
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCartService_ChangeQuantity_MissingProductUnbounded(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})
	product := seedProduct(t, products, "Deskmat", "18.50", 5)

	ctx := context.Background()
	_, err := cartSvc.AddToCart(ctx, "sess-1", product.ID)
	require.NoError(t, err)

	// The product disappears from the catalog; the cart line survives and
	// its quantity is no longer capped. Placement remains the authority.
	require.NoError(t, products.DeleteProduct(ctx, product.ID))

	cart, err := cartSvc.ChangeQuantity(ctx, "sess-1", product.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, cart.Lines[0].Quantity)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})
	first := seedProduct(t, products, "Keycap Set", "25.00", 3)
	second := seedProduct(t, products, "Deskmat", "18.50", 5)

	ctx := context.Background()
	_, err := cartSvc.AddToCart(ctx, "sess-1", first.ID)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(ctx, "sess-1", second.ID)
	require.NoError(t, err)

	cart := cartSvc.RemoveFromCart("sess-1", first.ID)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, second.ID, cart.Lines[0].ProductID)

	cartSvc.ClearCart("sess-1")
	assert.True(t, cartSvc.GetCart("sess-1").IsEmpty())
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})
	product := seedProduct(t, products, "Keycap Set", "25.00", 3)

	ctx := context.Background()
	_, err := cartSvc.AddToCart(ctx, "sess-1", product.ID)
	require.NoError(t, err)

	assert.True(t, cartSvc.GetCart("sess-2").IsEmpty())
	assert.False(t, cartSvc.GetCart("sess-1").IsEmpty())
}

func TestCartService_TotalFollowsQuantities(t *testing.T) {
	products := newFakeProductRepo()
	cartSvc := newTestCartService(products, &fakeCatalogMirror{})
	first := seedProduct(t, products, "Keycap Set", "25.00", 10)
	second := seedProduct(t, products, "Deskmat", "18.50", 10)

	ctx := context.Background()
	_, err := cartSvc.AddToCart(ctx, "sess-1", first.ID)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(ctx, "sess-1", second.ID)
	require.NoError(t, err)
	cart, err := cartSvc.ChangeQuantity(ctx, "sess-1", second.ID, 2)
	require.NoError(t, err)

	// 25.00 + 3 * 18.50
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("80.50")))
}
