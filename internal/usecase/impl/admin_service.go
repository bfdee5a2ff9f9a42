package impl

import (
	"context"
	"log/slog"

	"pixelstore/config"
	"pixelstore/internal/domain/entity"
	domainerrors "pixelstore/internal/domain/errors"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/domain/service"
	"pixelstore/internal/errors"
	"pixelstore/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type adminService struct {
	hasher       service.PasswordHasher
	tokenService service.TokenService
	orderMirror  usecase.OrderMirror
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	reviewRepo   repository.ReviewRepository
	config       *config.Config
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OrderMirror  usecase.OrderMirror
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	ReviewRepo   repository.ReviewRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAdminService creates a new admin service instance
func NewAdminService(params AdminServiceParams) (usecase.AdminUsecase, error) {
	if params.Config.Admin == nil || params.Config.Admin.PasswordHash == "" {
		return nil, errors.New("admin password hash must be configured")
	}

	return &adminService{
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		orderMirror:  params.OrderMirror,
		orderRepo:    params.OrderRepo,
		productRepo:  params.ProductRepo,
		reviewRepo:   params.ReviewRepo,
		config:       params.Config,
		logger:       params.Logger,
	}, nil
}

// Login verifies the shared admin password against its bcrypt hash and issues
// a short-lived admin token. The plaintext never leaves this function.
func (s *adminService) Login(ctx context.Context, password string) (string, error) {
	if !s.hasher.Check(password, s.config.Admin.PasswordHash) {
		s.logger.Warn("admin login rejected")

		return "", domainerrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.GenerateAdminToken()
	if err != nil {
		s.logger.Error("admin token generation failed", slog.Any("error", err))

		return "", domainerrors.ErrInternalError
	}

	return token, nil
}

// Stats computes the dashboard cards. Orders come from the live mirror when
// it is warm so the dashboard tracks checkouts without polling.
func (s *adminService) Stats(ctx context.Context) (*usecase.DashboardStats, error) {
	orders, err := s.orders(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to load orders for stats")
	}

	totalSales := decimal.Zero
	pending := 0
	for _, order := range orders {
		totalSales = totalSales.Add(order.Total)
		if order.Status == entity.OrderStatusPending {
			pending++
		}
	}

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to load products for stats")
	}

	reviews, err := s.reviewRepo.ListReviews(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to load reviews for stats")
	}

	return &usecase.DashboardStats{
		TotalSales:    totalSales,
		OrderCount:    len(orders),
		PendingOrders: pending,
		ProductCount:  len(products),
		ReviewCount:   len(reviews),
	}, nil
}

func (s *adminService) orders(ctx context.Context) ([]*entity.Order, error) {
	if s.orderMirror != nil {
		if orders, ok := s.orderMirror.Orders(); ok {
			return orders, nil
		}
	}

	return s.orderRepo.ListOrders(ctx)
}
