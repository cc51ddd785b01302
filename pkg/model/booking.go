package model

import (
	"time"
)

// Booking is an immutable record of one completed reservation. ResourceName is
// a snapshot taken at booking time so history stays readable if the resource is
// later renamed.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	ResourceID    string    `json:"resource_id" bson:"resource_id"`
	ResourceName  string    `json:"resource_name" bson:"resource_name"`
	User          string    `json:"user" bson:"user"`
	DurationHours float64   `json:"duration_hours" bson:"duration_hours"`
	RatePerHour   float64   `json:"rate_per_hour" bson:"rate_per_hour"`
	Start         time.Time `json:"start" bson:"start"`
	End           time.Time `json:"end" bson:"end"`
	Total         float64   `json:"total" bson:"total"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// BookingRequest is the caller-facing shape of a reservation request. Zero
// values for user, duration and rate are filled with defaults before
// validation.
type BookingRequest struct {
	ResourceID    string  `json:"resource_id" validate:"required"`
	User          string  `json:"user" validate:"omitempty,min=1,max=100"`
	DurationHours float64 `json:"duration_hours" validate:"omitempty,gt=0,lte=24"`
	RatePerHour   float64 `json:"rate_per_hour" validate:"omitempty,gt=0"`
}
