package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardStats are the admin console dashboard cards.
type DashboardStats struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	OrderCount    int             `json:"orderCount"`
	PendingOrders int             `json:"pendingOrders"`
	ProductCount  int             `json:"productCount"`
	ReviewCount   int             `json:"reviewCount"`
}

// AdminUsecase defines the interface for admin console access.
type AdminUsecase interface {
	// Login verifies the shared admin password against its stored hash and
	// issues a short-lived admin token.
	Login(ctx context.Context, password string) (string, error)

	// Stats computes the dashboard numbers.
	Stats(ctx context.Context) (*DashboardStats, error)
}
