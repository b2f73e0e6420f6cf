package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type ChatCitationRepository interface {
	CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error
	FindAllByMessageIds(ctx context.Context, messageIds []uuid.UUID) ([]*entity.ChatCitation, error)
}
