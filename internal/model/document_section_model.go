package model

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentSection struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProjectId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Content   string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}

func (DocumentSection) TableName() string {
	return "document_sections"
}
