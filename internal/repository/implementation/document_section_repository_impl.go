package implementation

import (
	"context"

	"property-assistant-be/internal/mapper"
	"property-assistant-be/internal/model"
	"property-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentSectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentSectionMapper
}

func NewDocumentSectionRepository(db *gorm.DB) contract.DocumentSectionRepository {
	return &DocumentSectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentSectionMapper(),
	}
}

func (r *DocumentSectionRepositoryImpl) SearchByProject(ctx context.Context, projectId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocumentSection, error) {
	type row struct {
		model.DocumentSection
		Similarity float64
	}
	var rows []row

	vec := pgvector.NewVector(embedding)
	err := r.db.WithContext(ctx).
		Table("document_sections").
		Select("document_sections.*, 1 - (embedding <=> ?) as similarity", vec).
		Where("project_id = ?", projectId).
		Where("embedding IS NOT NULL").
		Where("(embedding <=> ?) < ?", vec, maxDistance).
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentSection, len(rows))
	for i, res := range rows {
		scored[i] = &contract.ScoredDocumentSection{
			Section:    r.mapper.ToEntity(&res.DocumentSection),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
