package entity

import (
	"time"

	"pixelstore/internal/errors"
)

// ErrRatingOutOfRange is returned when a sub-rating falls outside [1,5].
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// Ratings holds the three sub-ratings of a review, each an integer in [1,5].
type Ratings struct {
	Delivery int `json:"delivery"` // Delivery speed.
	Service  int `json:"service"`  // Customer service.
	Quality  int `json:"quality"`  // Product quality.
}

// Validate checks every sub-rating is within [1,5].
func (r Ratings) Validate() error {
	for _, v := range []int{r.Delivery, r.Service, r.Quality} {
		if v < 1 || v > 5 {
			return ErrRatingOutOfRange
		}
	}

	return nil
}

// Review is customer feedback tied to a completed order. At most one review
// exists per distinct order number.
type Review struct {
	ID             string    `json:"id"`              // Store-assigned identifier.
	OrderNumber    string    `json:"order_number"`    // The human-facing number of the reviewed order.
	CustomerName   string    `json:"customer_name"`   // Pre-filled from the matched order.
	ProductSummary string    `json:"product_summary"` // Snapshot of the purchased product names.
	Ratings        Ratings   `json:"ratings"`
	Comment        string    `json:"comment"`    // Optional free text.
	CreatedAt      time.Time `json:"created_at"` // Server-assigned creation timestamp.
}
