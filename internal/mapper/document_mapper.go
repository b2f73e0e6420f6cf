package mapper

import (
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:            d.Id,
		TenantId:      d.TenantId,
		DevelopmentId: d.DevelopmentId,
		Title:         d.Title,
		DocumentType:  d.DocumentType,
		HouseTypeCode: d.HouseTypeCode,
		IsImportant:   d.IsImportant,
		Status:        d.Status,
		ExtractedText: d.ExtractedText,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:            d.Id,
		TenantId:      d.TenantId,
		DevelopmentId: d.DevelopmentId,
		Title:         d.Title,
		DocumentType:  d.DocumentType,
		HouseTypeCode: d.HouseTypeCode,
		IsImportant:   d.IsImportant,
		Status:        d.Status,
		ExtractedText: d.ExtractedText,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type DevelopmentMapper struct{}

func NewDevelopmentMapper() *DevelopmentMapper {
	return &DevelopmentMapper{}
}

func (m *DevelopmentMapper) ToEntity(d *model.Development) *entity.Development {
	if d == nil {
		return nil
	}

	return &entity.Development{
		Id:        d.Id,
		TenantId:  d.TenantId,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DevelopmentMapper) ProjectToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}

	return &entity.Project{
		Id:   p.Id,
		Name: p.Name,
	}
}

type DocumentSectionMapper struct{}

func NewDocumentSectionMapper() *DocumentSectionMapper {
	return &DocumentSectionMapper{}
}

func (m *DocumentSectionMapper) ToEntity(s *model.DocumentSection) *entity.DocumentSection {
	if s == nil {
		return nil
	}

	return &entity.DocumentSection{
		Id:        s.Id,
		ProjectId: s.ProjectId,
		Content:   s.Content,
		Embedding: s.Embedding.Slice(),
	}
}
