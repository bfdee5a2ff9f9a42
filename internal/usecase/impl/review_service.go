package impl

import (
	"context"
	"log/slog"

	"pixelstore/internal/domain/entity"
	domainerrors "pixelstore/internal/domain/errors"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/errors"
	"pixelstore/internal/usecase"

	"go.uber.org/fx"
)

type reviewService struct {
	txManager  repository.TransactionManager
	orderRepo  repository.OrderRepository
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	OrderRepo  repository.OrderRepository
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		orderRepo:  params.OrderRepo,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

// VerifyOrder checks that the order number names a real order that has not
// been reviewed yet. The two failure modes are distinct so the storefront can
// tell the customer which one applies.
func (s *reviewService) VerifyOrder(ctx context.Context, orderNumber string) (*entity.Order, error) {
	order, err := s.orderRepo.FindOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to look up order")
	}

	_, err = s.reviewRepo.FindReviewByOrderNumber(ctx, orderNumber)
	if err == nil {
		return nil, domainerrors.ErrAlreadyReviewed
	}
	if !errors.Is(err, repository.ErrReviewNotFound) {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to look up review")
	}

	return order, nil
}

// SubmitReview validates the ratings and persists the review. The
// verify-then-submit window is closed by re-checking uniqueness inside the
// write transaction; two concurrent submissions cannot both commit.
func (s *reviewService) SubmitReview(ctx context.Context, input *usecase.SubmitReviewInput) (*entity.Review, error) {
	if err := input.Ratings.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidRating
	}

	var review *entity.Review
	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		ordersTx := factory.NewOrderRepository()
		order, err := ordersTx.FindOrderByNumber(ctx, input.OrderNumber)
		if err != nil {
			return err
		}

		reviewsTx := factory.NewReviewRepository()
		if _, err := reviewsTx.FindReviewByOrderNumber(ctx, input.OrderNumber); err == nil {
			return repository.ErrDuplicateReview
		} else if !errors.Is(err, repository.ErrReviewNotFound) {
			return err
		}

		customerName := input.CustomerName
		if customerName == "" {
			customerName = order.Customer.Name
		}

		review = &entity.Review{
			OrderNumber:    order.Number,
			CustomerName:   customerName,
			ProductSummary: order.ProductSummary(),
			Ratings:        input.Ratings,
			Comment:        input.Comment,
		}

		return reviewsTx.CreateReview(ctx, review)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return nil, domainerrors.ErrOrderNotFound
		case errors.Is(err, repository.ErrDuplicateReview):
			return nil, domainerrors.ErrAlreadyReviewed
		default:
			s.logger.Error("review submission transaction failed", slog.Any("error", err))

			return nil, domainerrors.NewStoreExecuteError(err, "failed to submit review")
		}
	}

	return review, nil
}

// ListReviews retrieves all reviews, newest first.
func (s *reviewService) ListReviews(ctx context.Context) ([]*entity.Review, error) {
	reviews, err := s.reviewRepo.ListReviews(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to list reviews")
	}

	return reviews, nil
}

// DeleteReview removes a review by its ID.
func (s *reviewService) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.reviewRepo.FindReviewByOrderNumber(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrReviewNotFound
		}

		return domainerrors.NewStoreExecuteError(err, "failed to look up review")
	}

	if err := s.reviewRepo.DeleteReview(ctx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to delete review")
	}

	return nil
}
