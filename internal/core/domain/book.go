package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrBookUnavailable = errors.New("book is not available")
var ErrBookOnLoan = errors.New("book has an active loan")
var ErrForbidden = errors.New("access forbidden")

// Book is a catalog entry. Available is false iff an active loan currently
// references the book; reservations never touch it.
type Book struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Author    string    `json:"author" bson:"author"`
	Category  string    `json:"category" bson:"category"`
	AddedBy   string    `json:"added_by" bson:"added_by"`
	Available bool      `json:"available" bson:"available"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
