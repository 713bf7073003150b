package domain

import (
	"errors"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationExpired   ReservationStatus = "EXPIRED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

var ErrReservationNotFound = errors.New("reservation not found")
var ErrReservationNotActive = errors.New("reservation is not active")

// DefaultReservationTTL is how long a hold lasts before it lapses.
const DefaultReservationTTL = 72 * time.Hour

// Reservation is a time-boxed hold on a book prior to loan issuance. It does
// not flip the book's availability; only an issued loan does that.
type Reservation struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	BookID     string            `json:"book_id" bson:"book_id"`
	UserID     string            `json:"user_id" bson:"user_id"`
	ReservedAt time.Time         `json:"reserved_at" bson:"reserved_at"`
	ExpiresAt  time.Time         `json:"expires_at" bson:"expires_at"`
	Status     ReservationStatus `json:"status" bson:"status"`
}

// IsExpired reports whether the hold has lapsed at the given instant.
// Expiry is evaluated lazily on read; there is no background sweep.
func (r *Reservation) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// EffectiveStatus folds lazy expiry into the stored status: an ACTIVE
// reservation whose ExpiresAt has passed reads as EXPIRED.
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status == ReservationActive && r.IsExpired(now) {
		return ReservationExpired
	}
	return r.Status
}
