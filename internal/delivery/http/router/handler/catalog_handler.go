package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"pixelstore/internal/delivery/http/response"
	"pixelstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CatalogHandler serves the storefront catalog and the admin product console.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// productRequest is the admin payload for creating or updating a product.
// Price travels as a string to keep exact decimal semantics on the wire.
type productRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

func (r *productRequest) toInput() (*usecase.ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return nil, err
	}

	return &usecase.ProductInput{
		Name:        r.Name,
		Price:       price,
		Stock:       r.Stock,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
	}, nil
}

// ListProducts handles the storefront catalog listing. An optional "q" query
// parameter switches to a case-insensitive search.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	query := c.QueryParam("q")

	if strings.TrimSpace(query) != "" {
		products, err := h.uc.SearchProducts(c.Request().Context(), query)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
	}

	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProduct handles a single product detail request.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// CreateProduct handles the admin create-product request.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req *productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Price must be a decimal number")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct handles the admin update-product request.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	var req *productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Price must be a decimal number")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct handles the admin delete-product request.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.uc.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// UploadImage handles the admin multipart image upload and returns the public
// URL to store on the product.
func (h *CatalogHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing image file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return errors.WithStack(err)
	}

	url, err := h.uc.UploadProductImage(
		c.Request().Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		content,
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"url": url}, "Image uploaded successfully")
}
