package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type DevelopmentRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*entity.Development, error)
}

// ProjectRepository resolves legacy projects, matched to developments by name.
type ProjectRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Project, error)
}
