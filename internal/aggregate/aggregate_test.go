package aggregate

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/stretchr/testify/assert"
)

func reviews(ratings ...int) []models.Review {
	out := make([]models.Review, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, models.Review{Rating: r})
	}
	return out
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{4}, 4.0},
		{"mean of three", []int{5, 3, 4}, 4.0},
		{"two values", []int{4, 2}, 3.0},
		{"rounds half up", []int{5, 4, 4, 4}, 4.3},
		{"rounds tenths", []int{5, 5, 4}, 4.7},
		{"exact half", []int{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, 2.0},
		{"five and four", []int{5, 4}, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageRating(reviews(tt.ratings...)))
		})
	}
}

func TestContactCount(t *testing.T) {
	assert.Equal(t, 0, ContactCount(nil))
	assert.Equal(t, 2, ContactCount([]models.ContactLog{{ProviderID: 1}, {ProviderID: 1}}))
}
