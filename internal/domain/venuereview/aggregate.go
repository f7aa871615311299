package venuereviews

import "math"

// Aggregate is the derived rating summary of one venue.
type Aggregate struct {
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// Compute derives the aggregate from the full current review set: the mean of
// the overall ratings rounded half away from zero to one decimal, and the
// review count. No reviews yields the zero aggregate.
func Compute(reviews []Review) Aggregate {
	if len(reviews) == 0 {
		return Aggregate{}
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Ratings.Overall
	}

	return Aggregate{
		AvgRating:   RoundRating(float64(sum) / float64(len(reviews))),
		ReviewCount: len(reviews),
	}
}

// RoundRating rounds to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
