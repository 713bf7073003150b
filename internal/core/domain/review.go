package domain

import (
	"errors"
	"time"
)

var ErrReviewNotFound = errors.New("review not found")
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

const (
	MinRating = 1
	MaxRating = 5
)

// Review is an append-only rated comment tied to a book and its author.
// No update path exists; admins may delete.
type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	BookID    string    `json:"book_id" bson:"book_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ValidRating reports whether a rating lies within [MinRating, MaxRating].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
