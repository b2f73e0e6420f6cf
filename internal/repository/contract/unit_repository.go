package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type UnitRepository interface {
	// FindById returns (nil, nil) when no unit matches.
	FindById(ctx context.Context, tenantId, id uuid.UUID) (*entity.Unit, error)
	FindAllByDevelopment(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.Unit, error)
}
