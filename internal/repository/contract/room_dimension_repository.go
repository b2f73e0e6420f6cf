package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// UnitRoomDimensionRepository serves the keyed dimension lookups used by
// the dimension guardrail and the floorplan context builder. FindX methods
// return (nil, nil) when no row matches.
type UnitRoomDimensionRepository interface {
	// Highest-trust lookups: developer-verified rows, best confidence first.
	FindVerifiedUnitRoom(ctx context.Context, tenantId, unitId uuid.UUID, roomKey string) (*entity.UnitRoomDimension, error)
	FindVerifiedHouseTypeRoom(ctx context.Context, tenantId uuid.UUID, houseTypeCode, roomKey string) (*entity.UnitRoomDimension, error)
	// Unverified rows, typically vision-extracted.
	FindUnverifiedRoom(ctx context.Context, tenantId uuid.UUID, houseTypeCode, roomKey string) (*entity.UnitRoomDimension, error)

	ListVerifiedUnitRooms(ctx context.Context, tenantId, unitId uuid.UUID) ([]*entity.UnitRoomDimension, error)
	ListVerifiedHouseTypeRooms(ctx context.Context, tenantId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error)
	ListUnverifiedRooms(ctx context.Context, tenantId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error)

	// Vision-extracted floorplan rows for prompt context. The house-type
	// variant returns every row for the type; the distinct variant keeps the
	// highest-confidence row per room key across the development.
	ListVisionRoomsByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error)
	ListVisionRoomsDistinct(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.UnitRoomDimension, error)
}
