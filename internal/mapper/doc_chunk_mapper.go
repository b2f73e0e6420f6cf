package mapper

import (
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocChunkMapper struct{}

func NewDocChunkMapper() *DocChunkMapper {
	return &DocChunkMapper{}
}

func (m *DocChunkMapper) ToEntity(c *model.DocChunk) *entity.DocChunk {
	if c == nil {
		return nil
	}

	return &entity.DocChunk{
		Id:            c.Id,
		TenantId:      c.TenantId,
		DevelopmentId: c.DevelopmentId,
		DocumentId:    c.DocumentId,
		HouseTypeCode: c.HouseTypeCode,
		DocKind:       c.DocKind,
		Content:       c.Content,
		ChunkIndex:    c.ChunkIndex,
		Metadata:      map[string]interface{}(c.Metadata),
		Embedding:     c.Embedding.Slice(),
		CreatedAt:     c.CreatedAt,
	}
}

func (m *DocChunkMapper) ToModel(c *entity.DocChunk) *model.DocChunk {
	if c == nil {
		return nil
	}

	return &model.DocChunk{
		Id:            c.Id,
		TenantId:      c.TenantId,
		DevelopmentId: c.DevelopmentId,
		DocumentId:    c.DocumentId,
		HouseTypeCode: c.HouseTypeCode,
		DocKind:       c.DocKind,
		Content:       c.Content,
		ChunkIndex:    c.ChunkIndex,
		Metadata:      datatypes.JSONMap(c.Metadata),
		Embedding:     pgvector.NewVector(c.Embedding),
		CreatedAt:     c.CreatedAt,
	}
}

func (m *DocChunkMapper) ToEntities(chunks []*model.DocChunk) []*entity.DocChunk {
	entities := make([]*entity.DocChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocChunkMapper) ToModels(chunks []*entity.DocChunk) []*model.DocChunk {
	models := make([]*model.DocChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
