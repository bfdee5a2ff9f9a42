package impl

import (
	"context"
	"log/slog"
	"strings"

	"pixelstore/config"
	"pixelstore/internal/domain/entity"
	domainerrors "pixelstore/internal/domain/errors"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/domain/service"
	"pixelstore/internal/errors"
	"pixelstore/internal/usecase"

	"go.uber.org/fx"
)

type catalogService struct {
	productRepo repository.ProductRepository
	mirror      usecase.CatalogMirror
	imageStore  service.ImageStore
	config      *config.Config
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Mirror      usecase.CatalogMirror
	ImageStore  service.ImageStore
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		mirror:      params.Mirror,
		imageStore:  params.ImageStore,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// ListProducts serves the storefront catalog from the live mirror when it is
// warm, falling back to a direct store read.
func (s *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	if s.mirror != nil {
		if products, ok := s.mirror.Products(); ok {
			return products, nil
		}
	}

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to list products")
	}

	return products, nil
}

// SearchProducts filters the catalog by a case-insensitive name match.
// An empty query returns the full catalog.
func (s *catalogService) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products, nil
	}

	matched := make([]*entity.Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), needle) ||
			strings.Contains(strings.ToLower(product.Category), needle) {
			matched = append(matched, product)
		}
	}

	return matched, nil
}

// GetProduct retrieves one product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to load product")
	}

	return product, nil
}

// CreateProduct validates and persists a new product. The save is bounded by
// the configured timeout so a wedged store surfaces as a retryable failure.
func (s *catalogService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.config.Checkout.SaveTimeout)
	defer cancel()

	if err := s.productRepo.CreateProduct(saveCtx, product); err != nil {
		s.logger.Error("product create failed", slog.Any("error", err))

		return nil, domainerrors.ErrProductSaveFailed
	}

	return product, nil
}

// UpdateProduct validates and overwrites an existing product.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.config.Checkout.SaveTimeout)
	defer cancel()

	if err := s.productRepo.UpdateProduct(saveCtx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		s.logger.Error("product update failed", slog.Any("error", err))

		return nil, domainerrors.ErrProductSaveFailed
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog. Existing order lines keep
// their snapshots, so nothing else is touched.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	saveCtx, cancel := context.WithTimeout(ctx, s.config.Checkout.SaveTimeout)
	defer cancel()

	if err := s.productRepo.DeleteProduct(saveCtx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to delete product")
	}

	return nil
}

// UploadProductImage stores an image and returns its public URL.
func (s *catalogService) UploadProductImage(ctx context.Context, filename, contentType string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", domainerrors.ErrValidationFailed.WithDetails("image content is empty")
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.config.Checkout.SaveTimeout)
	defer cancel()

	url, err := s.imageStore.SaveImage(saveCtx, filename, contentType, content)
	if err != nil {
		s.logger.Error("image upload failed", slog.Any("error", err))

		return "", domainerrors.ErrProductSaveFailed
	}

	return url, nil
}

func validateProductInput(input *usecase.ProductInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return domainerrors.ErrValidationFailed.WithDetails("product name is required")
	case input.Price.IsNegative():
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	case input.Stock < 0:
		return domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
	default:
		return nil
	}
}
