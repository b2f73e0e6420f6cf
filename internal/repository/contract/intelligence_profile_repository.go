package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type IntelligenceProfileRepository interface {
	// FindCurrentByHouseType returns the current profile for the house type,
	// or (nil, nil) when none exists.
	FindCurrentByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string) (*entity.UnitIntelligenceProfile, error)
}
