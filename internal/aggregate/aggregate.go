// Package aggregate derives read-side values from raw review and contact rows.
// Values are recomputed from the full row set on every call.
package aggregate

import (
	"math"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
)

// AverageRating is the mean rating rounded half-up to one decimal place.
// No reviews yields 0.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	// Integer tenths keep x.x5 boundaries exact before rounding.
	tenths := float64(sum*10) / float64(len(reviews))
	return math.Floor(tenths+0.5) / 10
}

func ContactCount(contacts []models.ContactLog) int {
	return len(contacts)
}
