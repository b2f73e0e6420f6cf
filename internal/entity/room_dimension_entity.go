package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnitRoomDimension is one measured room row, either extracted by the
// floorplan vision pipeline or entered/verified by the developer.
type UnitRoomDimension struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	HouseTypeId   *uuid.UUID
	UnitId        *uuid.UUID
	UnitTypeCode  *string
	RoomName      string
	RoomKey       string
	Floor         *string
	LengthM       *float64
	WidthM        *float64
	AreaSqm       *float64
	CeilingHeight *float64
	Source        string
	Verified      bool
	Confidence    float64
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
