package model

const (
	KindWorkstation = "workstation"
	KindLounge      = "lounge"

	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

// Resource is a reservable physical asset. The ID is assigned at provisioning
// time and never changes; Status is owned exclusively by the registry and only
// mutated through its conditional-update operations.
type Resource struct {
	ID     string `json:"id" bson:"_id" validate:"required"`
	Name   string `json:"name" bson:"name" validate:"required"`
	Kind   string `json:"kind" bson:"kind" validate:"required,oneof=workstation lounge"`
	Status string `json:"status" bson:"status" validate:"required,oneof=available occupied maintenance"`
	Seq    int    `json:"seq" bson:"seq"`
}
