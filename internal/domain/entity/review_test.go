package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ratings Ratings
		valid   bool
	}{
		{"all minimum", Ratings{Delivery: 1, Service: 1, Quality: 1}, true},
		{"all maximum", Ratings{Delivery: 5, Service: 5, Quality: 5}, true},
		{"mixed", Ratings{Delivery: 3, Service: 4, Quality: 5}, true},
		{"zero delivery", Ratings{Delivery: 0, Service: 3, Quality: 3}, false},
		{"service too high", Ratings{Delivery: 3, Service: 6, Quality: 3}, false},
		{"negative quality", Ratings{Delivery: 3, Service: 3, Quality: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ratings.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrRatingOutOfRange)
			}
		})
	}
}
