package domain

import (
	"time"
)

// Rating score bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a single star rating submitted by a buyer. Ratings are
// append-only: once created they are never edited or deleted.
type Rating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsValidScore reports whether a submitted score is inside [MinRating, MaxRating].
func IsValidScore(score int) bool {
	return score >= MinRating && score <= MaxRating
}
