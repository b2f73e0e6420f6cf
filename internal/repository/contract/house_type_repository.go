package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type HouseTypeRepository interface {
	// FindByCode returns (nil, nil) when the development has no such type.
	FindByCode(ctx context.Context, developmentId uuid.UUID, houseTypeCode string) (*entity.HouseType, error)
}
