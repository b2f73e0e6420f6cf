package entity

import (
	"time"

	"github.com/google/uuid"
)

// HouseType is the developer-maintained template for a unit type.
// Dimensions and RoomDimensions are both free-form JSON room maps; older
// tenants populated one, newer tenants the other.
type HouseType struct {
	Id                uuid.UUID
	TenantId          uuid.UUID
	DevelopmentId     uuid.UUID
	HouseTypeCode     string
	Name              *string
	Description       *string
	TotalFloorAreaSqm *float64
	RoomDimensions    map[string]interface{}
	Dimensions        map[string]interface{}
	CreatedAt         time.Time
}
