package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types emitted by the service. Consumers key off the event-type header
// before decoding the payload.
const (
	TypeResourceStatusChanged = "resource.status_changed"
	TypeBookingCreated        = "booking.created"
	TypeOrderPlaced           = "order.placed"
)

// Header keys shared with downstream consumers.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// ResourceStatusChanged is published after every successful registry
// transition.
type ResourceStatusChanged struct {
	ResourceID string    `json:"resource_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	At         time.Time `json:"at"`
}

type BookingCreated struct {
	BookingID    string    `json:"booking_id"`
	ResourceID   string    `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	User         string    `json:"user"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Total        float64   `json:"total"`
}

type OrderPlaced struct {
	OrderID      string    `json:"order_id"`
	User         string    `json:"user"`
	Total        float64   `json:"total"`
	DeliveryType string    `json:"delivery_type"`
	PlacedAt     time.Time `json:"placed_at"`
}

// Publisher delivers domain events. Publishing is best effort: callers log
// failures and never fail the originating request on them.
type Publisher interface {
	Publish(ctx context.Context, eventType string, key string, payload any) error
	Close() error
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType string, key string, payload any) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

func encodePayload(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
