package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"net/url"
	"strings"

	"pixelstore/config"
	deliverycontext "pixelstore/internal/delivery/context"
	"pixelstore/internal/domain/entity"
	domainerrors "pixelstore/internal/domain/errors"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/domain/service"
	"pixelstore/internal/errors"
	"pixelstore/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type orderService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	cartUsecase   usecase.CartUsecase
	publisher     service.EventPublisher
	qrcodeService service.QRCodeService
	config        *config.Config
	logger        *slog.Logger

	// newNumber draws candidate order numbers; swapped in tests to force
	// collisions.
	newNumber func(digits int) (string, error)
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	OrderRepo     repository.OrderRepository
	CartUsecase   usecase.CartUsecase
	Publisher     service.EventPublisher
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		cartUsecase:   params.CartUsecase,
		publisher:     params.Publisher,
		qrcodeService: params.QRCodeService,
		config:        params.Config,
		logger:        params.Logger,
		newNumber:     generateOrderNumber,
	}
}

// Checkout places an order from the session cart. Order creation and stock
// reservation commit in one transaction; on any failure the cart is left
// intact and nothing is written.
func (s *orderService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutResult, error) {
	cart := s.cartUsecase.GetCart(input.SessionID)
	if cart.IsEmpty() {
		return nil, domainerrors.ErrEmptyCart
	}

	lines := entity.LinesFromCart(cart)
	total := cart.Total()
	adjustments := make([]repository.StockAdjustment, 0, len(lines))
	for _, line := range lines {
		adjustments = append(adjustments, repository.StockAdjustment{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	// The placement transaction is bounded by the configured save timeout so a
	// wedged store surfaces as a retryable failure instead of a hung checkout.
	placeCtx, cancel := context.WithTimeout(ctx, s.config.Checkout.SaveTimeout)
	defer cancel()

	order, err := s.placeWithUniqueNumber(placeCtx, lines, total, input.Customer, adjustments)
	if err != nil {
		return nil, err
	}

	// The order is committed; everything below is presentation and alerting.
	s.cartUsecase.ClearCart(input.SessionID)
	s.publishOrderPlaced(ctx, order)

	message := s.confirmationMessage(order)
	chatLink := s.chatLink(message)

	var qrCode []byte
	if chatLink != "" {
		qrCode, err = s.qrcodeService.GeneratePaymentQR(chatLink)
		if err != nil {
			s.logger.Warn("failed to generate payment QR code",
				slog.String("order_number", order.Number),
				slog.Any("error", err),
			)
			qrCode = nil
		}
	}

	return &usecase.CheckoutResult{
		Order:               order,
		ConfirmationMessage: message,
		ChatLink:            chatLink,
		QRCode:              qrCode,
	}, nil
}

// placeWithUniqueNumber retries the placement transaction with a fresh random
// order number whenever the generated one is already taken.
func (s *orderService) placeWithUniqueNumber(
	ctx context.Context,
	lines []entity.OrderLine,
	total decimal.Decimal,
	customer entity.CustomerInfo,
	adjustments []repository.StockAdjustment,
) (*entity.Order, error) {
	attempts := s.config.Checkout.NumberAttempts

	for attempt := 0; attempt < attempts; attempt++ {
		number, err := s.newNumber(s.config.Checkout.OrderNumberDigits)
		if err != nil {
			return nil, domainerrors.NewStoreExecuteError(err, "failed to generate order number")
		}

		order := &entity.Order{
			Number:   number,
			Lines:    lines,
			Total:    total,
			Customer: customer,
			Status:   entity.OrderStatusPending,
		}

		err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
			ordersTx := factory.NewOrderRepository()

			// Reads precede writes within the transaction.
			if _, err := ordersTx.FindOrderByNumber(ctx, number); err == nil {
				return repository.ErrDuplicateOrderNumber
			} else if !errors.Is(err, repository.ErrOrderNotFound) {
				return err
			}

			productsTx := factory.NewProductRepository()
			if err := productsTx.ReserveStock(ctx, adjustments); err != nil {
				return err
			}

			return ordersTx.CreateOrder(ctx, order)
		})

		switch {
		case err == nil:
			return order, nil
		case errors.Is(err, repository.ErrDuplicateOrderNumber):
			s.logger.Info("order number collision, retrying",
				slog.String("number", number),
				slog.Int("attempt", attempt+1),
			)

			continue
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, domainerrors.ErrInsufficientStock
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, domainerrors.ErrProductNotFound
		default:
			s.logger.Error("order placement transaction failed", slog.Any("error", err))

			return nil, domainerrors.ErrOrderFailed
		}
	}

	return nil, domainerrors.ErrOrderFailed.WithDetails("could not allocate a unique order number")
}

// GetOrder retrieves an order by its document ID.
func (s *orderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to load order")
	}

	return order, nil
}

// ListOrders retrieves all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to list orders")
	}

	return orders, nil
}

// AdvanceStatus moves an order one step forward along its lifecycle.
func (s *orderService) AdvanceStatus(ctx context.Context, orderID string, next entity.OrderStatus) (*entity.Order, error) {
	if !next.Valid() {
		return nil, domainerrors.ErrInvalidStatusTransition
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to load order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, domainerrors.ErrInvalidStatusTransition.WithDetails(
			fmt.Sprintf("cannot move %s from %s to %s", order.Number, order.Status, next),
		)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, next); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to update order status")
	}

	order.Status = next

	return order, nil
}

// DeleteOrder removes an order and restores its reserved stock in one
// transaction, so the stock is given back exactly once.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		ordersTx := factory.NewOrderRepository()

		order, err := ordersTx.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		adjustments := make([]repository.StockAdjustment, 0, len(order.Lines))
		for _, line := range order.Lines {
			adjustments = append(adjustments, repository.StockAdjustment{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		productsTx := factory.NewProductRepository()
		if err := productsTx.RestoreStock(ctx, adjustments); err != nil {
			return err
		}

		return ordersTx.DeleteOrder(ctx, orderID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		s.logger.Error("order deletion transaction failed", slog.Any("error", err))

		return domainerrors.NewStoreExecuteError(err, "failed to delete order")
	}

	return nil
}

// publishOrderPlaced fires the operator alert. Failures are logged and
// swallowed; the committed order is never affected.
func (s *orderService) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		CustomerName: order.Customer.Name,
		Total:        order.Total.String(),
		ItemCount:    len(order.Lines),
	}

	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			slog.String("order_number", order.Number),
			slog.Any("error", err),
		)
	}
}

// confirmationMessage builds the text the customer sends to the operator to
// confirm payment.
func (s *orderService) confirmationMessage(order *entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi! I just placed order #%s.\n", order.Number)
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "- %s x%d\n", line.Name, line.Quantity)
	}
	fmt.Fprintf(&b, "Total: $%s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Name: %s", order.Customer.Name)

	return b.String()
}

// chatLink returns the operator chat URL with the confirmation message
// prefilled, or empty when no operator chat is configured.
func (s *orderService) chatLink(message string) string {
	if s.config.Contact == nil || s.config.Contact.OperatorChatID == "" {
		return ""
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s",
		s.config.Contact.OperatorChatID,
		url.QueryEscape(message),
	)
}

// generateOrderNumber draws a uniformly random number with the given digit
// count from crypto/rand, returned as its decimal string.
func generateOrderNumber(digits int) (string, error) {
	min := int64(1)
	for i := 1; i < digits; i++ {
		min *= 10
	}
	span := min*10 - min // e.g. 90000000 for 8 digits

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", min+n.Int64()), nil
}
