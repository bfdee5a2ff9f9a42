package impl

import (
	"context"
	"log/slog"
	"sync"

	"pixelstore/internal/domain/entity"
	domainerrors "pixelstore/internal/domain/errors"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/errors"
	"pixelstore/internal/usecase"

	"go.uber.org/fx"
)

// cartService keeps per-session carts in memory. Carts never touch the store;
// the only persistence interaction is reading live stock for the quantity
// ceilings.
type cartService struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart

	productRepo repository.ProductRepository
	mirror      usecase.CatalogMirror
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Mirror      usecase.CatalogMirror
	Logger      *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		carts:       make(map[string]*entity.Cart),
		productRepo: params.ProductRepo,
		mirror:      params.Mirror,
		logger:      params.Logger,
	}
}

// GetCart returns the cart for a session, creating an empty one if needed.
func (s *cartService) GetCart(sessionID string) *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart(sessionID)
}

// AddToCart adds one unit of a product to the session cart.
func (s *cartService) AddToCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to load product for cart")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(sessionID)
	if err := cart.AddItem(product); err != nil {
		var capacityErr *entity.ErrCapacityExceeded
		if errors.As(err, &capacityErr) {
			return nil, domainerrors.ErrCapacityExceeded
		}

		return nil, err
	}

	return cart, nil
}

// ChangeQuantity adjusts a line by delta against the current stock ceilings.
func (s *cartService) ChangeQuantity(ctx context.Context, sessionID, productID string, delta int) (*entity.Cart, error) {
	ceilings, err := s.stockCeilings(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(sessionID)
	if err := cart.ChangeQuantity(productID, delta, ceilings); err != nil {
		var capacityErr *entity.ErrCapacityExceeded
		if errors.As(err, &capacityErr) {
			return nil, domainerrors.ErrCapacityExceeded
		}

		return nil, err
	}

	return cart, nil
}

// RemoveFromCart drops a line unconditionally.
func (s *cartService) RemoveFromCart(sessionID, productID string) *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(sessionID)
	cart.RemoveItem(productID)

	return cart
}

// ClearCart empties the session cart.
func (s *cartService) ClearCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}

// stockCeilings prefers the mirror's full catalog snapshot and falls back to
// a direct read of the one product in question before the mirror warms up.
// A product missing from the store yields no ceiling, leaving the quantity
// effectively unbounded; the placement transaction remains the authority.
func (s *cartService) stockCeilings(ctx context.Context, productID string) (entity.StockCeilings, error) {
	if s.mirror != nil {
		if ceilings, ok := s.mirror.StockCeilings(); ok {
			return ceilings, nil
		}
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return entity.StockCeilings{}, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to load product stock")
	}

	return entity.StockCeilings{product.ID: product.Stock}, nil
}

// cart must be called with the mutex held.
func (s *cartService) cart(sessionID string) *entity.Cart {
	if cart, ok := s.carts[sessionID]; ok {
		return cart
	}

	cart := entity.NewCart()
	s.carts[sessionID] = cart

	return cart
}
