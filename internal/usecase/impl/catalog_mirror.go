package impl

import (
	"context"
	"log/slog"
	"sync"

	"pixelstore/internal/domain/entity"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/usecase"

	"go.uber.org/fx"
)

// catalogMirror holds the last product snapshot pushed by the store's
// listener. It is eventually consistent and never authoritative.
type catalogMirror struct {
	mu       sync.RWMutex
	products []*entity.Product
	ceilings entity.StockCeilings
	ready    bool
}

// CatalogMirrorParams holds dependencies for the catalog mirror, injected by Fx.
type CatalogMirrorParams struct {
	fx.In
	fx.Lifecycle

	Ctx     context.Context
	Watcher repository.ProductWatcher
	Logger  *slog.Logger
}

// NewCatalogMirror subscribes to the product collection on startup and keeps
// the in-process snapshot current until shutdown.
func NewCatalogMirror(params CatalogMirrorParams) usecase.CatalogMirror {
	mirror := &catalogMirror{}

	var stop func()
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s, err := params.Watcher.WatchProducts(params.Ctx, mirror.apply)
			if err != nil {
				return err
			}
			stop = s
			params.Logger.Info("catalog mirror started")

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if stop != nil {
				stop()
			}

			return nil
		},
	})

	return mirror
}

func (m *catalogMirror) apply(products []*entity.Product) {
	ceilings := make(entity.StockCeilings, len(products))
	for _, product := range products {
		ceilings[product.ID] = product.Stock
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
	m.ceilings = ceilings
	m.ready = true
}

// Products returns the last catalog snapshot.
func (m *catalogMirror) Products() ([]*entity.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.products, m.ready
}

// StockCeilings returns the per-product stock levels from the last snapshot.
func (m *catalogMirror) StockCeilings() (entity.StockCeilings, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.ceilings, m.ready
}
