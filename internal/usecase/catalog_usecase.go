package usecase

import (
	"context"

	"pixelstore/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductInput carries the editable fields of a product for admin saves.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Description string
	ImageURL    string
	Category    string
}

// CatalogUsecase defines the interface for catalog use cases: read-only
// storefront browsing plus the admin product console. Stock is only edited
// here as an absolute value; checkout adjusts it relatively on its own path.
type CatalogUsecase interface {
	// ListProducts retrieves the full catalog for the storefront.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// SearchProducts filters the catalog by a case-insensitive name match.
	SearchProducts(ctx context.Context, query string) ([]*entity.Product, error)

	// GetProduct retrieves one product by ID.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// CreateProduct validates and persists a new product.
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// UpdateProduct validates and overwrites an existing product.
	UpdateProduct(ctx context.Context, id string, input *ProductInput) (*entity.Product, error)

	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, id string) error

	// UploadProductImage stores an image and returns its public URL.
	UploadProductImage(ctx context.Context, filename, contentType string, content []byte) (string, error)
}
