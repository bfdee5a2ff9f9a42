// Package model contains the document representations persisted in Firestore
// and their mappings to and from domain entities.
package model

import (
	"time"

	"pixelstore/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ProductModel is the Firestore document shape of a product. Money is stored
// as a decimal string to avoid binary floating point drift.
type ProductModel struct {
	Name        string    `firestore:"name"`
	Price       string    `firestore:"price"`
	Stock       int       `firestore:"stock"`
	Description string    `firestore:"description"`
	ImageURL    string    `firestore:"imageUrl"`
	Category    string    `firestore:"category"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `firestore:"updatedAt,serverTimestamp"`
}

// FromProductDomain converts a domain product into its document shape.
func FromProductDomain(product *entity.Product) *ProductModel {
	return &ProductModel{
		Name:        product.Name,
		Price:       product.Price.String(),
		Stock:       product.Stock,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
	}
}

// ToProductDomain converts a document back into a domain product.
func (m *ProductModel) ToProductDomain(id string) (*entity.Product, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, errors.Wrapf(err, "product %s has malformed price %q", id, m.Price)
	}

	return &entity.Product{
		ID:          id,
		Name:        m.Name,
		Price:       price,
		Stock:       m.Stock,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
