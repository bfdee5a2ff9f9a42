package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pixelstore/internal/delivery/http/validator"
	"pixelstore/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCartUsecase records the session keys the handler resolves.
type stubCartUsecase struct {
	lastSession string
	cart        *entity.Cart
}

func (s *stubCartUsecase) GetCart(sessionID string) *entity.Cart {
	s.lastSession = sessionID

	return s.cart
}

func (s *stubCartUsecase) AddToCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error) {
	s.lastSession = sessionID

	return s.cart, nil
}

func (s *stubCartUsecase) ChangeQuantity(ctx context.Context, sessionID, productID string, delta int) (*entity.Cart, error) {
	s.lastSession = sessionID

	return s.cart, nil
}

func (s *stubCartUsecase) RemoveFromCart(sessionID, productID string) *entity.Cart {
	s.lastSession = sessionID

	return s.cart
}

func (s *stubCartUsecase) ClearCart(sessionID string) {
	s.lastSession = sessionID
}

func newCartTestContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func testCart() *entity.Cart {
	cart := entity.NewCart()
	_ = cart.AddItem(&entity.Product{
		ID:    "p-keycaps",
		Name:  "Keycap Set",
		Price: decimal.RequireFromString("25.00"),
		Stock: 3,
	})

	return cart
}

func TestCartHandler_GetCart_UsesSessionHeader(t *testing.T) {
	uc := &stubCartUsecase{cart: testCart()}
	handler := NewCartHandler(uc, slog.Default())

	c, rec := newCartTestContext(t, http.MethodGet, "/cart", "")
	c.Request().Header.Set(HeaderXSessionID, "session-42")

	require.NoError(t, handler.GetCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session-42", uc.lastSession)
	assert.Contains(t, rec.Body.String(), "Keycap Set")
}

func TestCartHandler_GetCart_MintsSessionCookie(t *testing.T) {
	uc := &stubCartUsecase{cart: entity.NewCart()}
	handler := NewCartHandler(uc, slog.Default())

	c, rec := newCartTestContext(t, http.MethodGet, "/cart", "")

	require.NoError(t, handler.GetCart(c))
	assert.NotEmpty(t, uc.lastSession)

	// The minted session key comes back as a cookie so the visitor keeps
	// the same cart on the next request.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, uc.lastSession, cookies[0].Value)
}

func TestCartHandler_AddItem_RequiresProductID(t *testing.T) {
	uc := &stubCartUsecase{cart: entity.NewCart()}
	handler := NewCartHandler(uc, slog.Default())

	c, rec := newCartTestContext(t, http.MethodPost, "/cart/items", `{}`)

	err := handler.AddItem(c)

	var httpErr *echo.HTTPError
	if assert.ErrorAs(t, err, &httpErr) {
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
	assert.Empty(t, uc.lastSession)
	assert.Zero(t, rec.Body.Len())
}

func TestCartHandler_ChangeQuantity_RejectsZeroDelta(t *testing.T) {
	uc := &stubCartUsecase{cart: entity.NewCart()}
	handler := NewCartHandler(uc, slog.Default())

	c, rec := newCartTestContext(t, http.MethodPatch, "/cart/items/p-keycaps?delta=0", "")
	c.SetParamNames("productID")
	c.SetParamValues("p-keycaps")

	require.NoError(t, handler.ChangeQuantity(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
