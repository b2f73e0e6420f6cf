package contract

import (
	"context"

	"property-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type ScoredDocumentSection struct {
	Section    *entity.DocumentSection
	Similarity float64
}

// DocumentSectionRepository reads the legacy content system's chunk table.
type DocumentSectionRepository interface {
	SearchByProject(ctx context.Context, projectId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*ScoredDocumentSection, error)
}
