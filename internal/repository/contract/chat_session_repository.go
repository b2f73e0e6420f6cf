package contract

import (
	"context"
	"time"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// FindById returns (nil, nil) when no session matches.
	FindById(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
	TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error
}
