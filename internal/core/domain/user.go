package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RoleReader    = "reader"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrUserInactive = errors.New("account is not activated")
var ErrInvalidActivation = errors.New("invalid or expired activation token")

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleLibrarian || role == RoleReader
}

// User models an authenticated actor. Role is immutable after assignment;
// Active gates authentication and is flipped by account activation.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
