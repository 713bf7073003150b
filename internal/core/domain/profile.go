package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// ActivityEntry is one line in a profile's activity log.
type ActivityEntry struct {
	At   time.Time `json:"at" bson:"at"`
	Note string    `json:"note" bson:"note"`
}

// Profile holds auxiliary per-user fields and an append-only activity log.
// One profile exists per user, created as an explicit step of registration.
type Profile struct {
	UserID      string          `json:"user_id" bson:"user_id"`
	Bio         string          `json:"bio,omitempty" bson:"bio,omitempty"`
	ActivityLog []ActivityEntry `json:"activity_log" bson:"activity_log"`
}
