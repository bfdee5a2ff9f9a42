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

// orderMirror holds the last order snapshot pushed by the store's listener.
type orderMirror struct {
	mu     sync.RWMutex
	orders []*entity.Order
	ready  bool
}

// OrderMirrorParams holds dependencies for the order mirror, injected by Fx.
type OrderMirrorParams struct {
	fx.In
	fx.Lifecycle

	Ctx     context.Context
	Watcher repository.OrderWatcher
	Logger  *slog.Logger
}

// NewOrderMirror subscribes to the order collection on startup.
func NewOrderMirror(params OrderMirrorParams) usecase.OrderMirror {
	mirror := &orderMirror{}

	var stop func()
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s, err := params.Watcher.WatchOrders(params.Ctx, mirror.apply)
			if err != nil {
				return err
			}
			stop = s
			params.Logger.Info("order mirror started")

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

func (m *orderMirror) apply(orders []*entity.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = orders
	m.ready = true
}

// Orders returns the last order snapshot.
func (m *orderMirror) Orders() ([]*entity.Order, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.orders, m.ready
}
