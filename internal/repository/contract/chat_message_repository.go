package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAllBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
	CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
