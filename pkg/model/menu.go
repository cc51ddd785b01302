package model

import "time"

const DefaultMenuIcon = "ph-hamburger"

type MenuItem struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Price     float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Icon      string    `json:"icon" bson:"icon"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// MenuItemUpdate carries a partial update; nil/empty fields are left untouched.
type MenuItemUpdate struct {
	Name  string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Icon  string   `json:"icon,omitempty"`
}
