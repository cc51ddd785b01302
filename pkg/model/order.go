package model

import "time"

const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"

	OrderStatusPending = "pending"
)

type OrderItem struct {
	Name  string  `json:"name" bson:"name" validate:"required"`
	Price float64 `json:"price" bson:"price" validate:"gte=0"`
	Qty   int     `json:"qty" bson:"qty" validate:"omitempty,min=1"`
}

type Order struct {
	ID               string      `json:"id,omitempty" bson:"_id,omitempty"`
	User             string      `json:"user" bson:"user" validate:"required"`
	Items            []OrderItem `json:"items" bson:"items" validate:"required,min=1,dive"`
	Total            float64     `json:"total" bson:"total" validate:"gte=0"`
	DeliveryType     string      `json:"delivery_type" bson:"delivery_type" validate:"required,oneof=delivery pickup"`
	DeliveryLocation string      `json:"delivery_location,omitempty" bson:"delivery_location,omitempty"`
	Status           string      `json:"status" bson:"status"`
	Timestamp        time.Time   `json:"timestamp" bson:"timestamp"`
}
