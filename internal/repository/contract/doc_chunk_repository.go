package contract

import (
	"context"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocChunk wraps DocChunk with its cosine similarity against the
// query embedding (1.0 = identical).
type ScoredDocChunk struct {
	Chunk      *entity.DocChunk
	Similarity float64
}

type DocChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Scoped nearest-neighbour searches. maxDistance is a cosine distance
	// cutoff (distance = 1 - similarity); rows at or beyond it are dropped.

	// SearchUnitScoped matches chunks whose metadata tags the given unit.
	SearchUnitScoped(ctx context.Context, tenantId, developmentId uuid.UUID, unitId string, embedding []float32, maxDistance float64, limit int) ([]*ScoredDocChunk, error)
	// SearchByHouseType matches chunks tagged with exactly this house type code.
	SearchByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*ScoredDocChunk, error)
	// SearchImportantDocs matches chunks of flagged-important documents or
	// privileged document kinds (specification, floor_plan, warranty, manual).
	SearchImportantDocs(ctx context.Context, tenantId, developmentId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*ScoredDocChunk, error)
	// SearchDevelopmentWide matches development chunks whose house type code
	// is null or equals houseTypeCode (pass "" to match only untagged chunks).
	SearchDevelopmentWide(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*ScoredDocChunk, error)
	// SearchDevelopmentPreferHouseType matches all development chunks but
	// orders exact house-type matches ahead of the rest.
	SearchDevelopmentPreferHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*ScoredDocChunk, error)
	// SearchTenantWide matches any chunk belonging to the tenant.
	SearchTenantWide(ctx context.Context, tenantId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*ScoredDocChunk, error)
}
