package model

import (
	"time"

	"pixelstore/internal/domain/entity"
)

// RatingsModel is the document shape of the three review sub-ratings.
type RatingsModel struct {
	Delivery int `firestore:"delivery"`
	Service  int `firestore:"service"`
	Quality  int `firestore:"quality"`
}

// ReviewModel is the Firestore document shape of a review.
type ReviewModel struct {
	OrderNumber    string       `firestore:"orderNumber"`
	CustomerName   string       `firestore:"customerName"`
	ProductSummary string       `firestore:"productSummary"`
	Ratings        RatingsModel `firestore:"ratings"`
	Comment        string       `firestore:"comment"`
	CreatedAt      time.Time    `firestore:"createdAt,serverTimestamp"`
}

// FromReviewDomain converts a domain review into its document shape.
func FromReviewDomain(review *entity.Review) *ReviewModel {
	return &ReviewModel{
		OrderNumber:    review.OrderNumber,
		CustomerName:   review.CustomerName,
		ProductSummary: review.ProductSummary,
		Ratings: RatingsModel{
			Delivery: review.Ratings.Delivery,
			Service:  review.Ratings.Service,
			Quality:  review.Ratings.Quality,
		},
		Comment: review.Comment,
	}
}

// ToReviewDomain converts a document back into a domain review.
func (m *ReviewModel) ToReviewDomain(id string) *entity.Review {
	return &entity.Review{
		ID:             id,
		OrderNumber:    m.OrderNumber,
		CustomerName:   m.CustomerName,
		ProductSummary: m.ProductSummary,
		Ratings: entity.Ratings{
			Delivery: m.Ratings.Delivery,
			Service:  m.Ratings.Service,
			Quality:  m.Ratings.Quality,
		},
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}
