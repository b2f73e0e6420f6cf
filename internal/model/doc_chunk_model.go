package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocChunk struct {
	Id            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID         `gorm:"type:uuid;not null;index"`
	DevelopmentId uuid.UUID         `gorm:"type:uuid;not null;index"`
	DocumentId    *uuid.UUID        `gorm:"type:uuid;index"`
	HouseTypeCode *string           `gorm:"type:text;index"`
	DocKind       *string           `gorm:"type:text"`
	Content       string            `gorm:"type:text"`
	ChunkIndex    int               `gorm:"default:0"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	Embedding     pgvector.Vector   `gorm:"type:vector(1536)"` // text-embedding-3-large at 1536 dims
	CreatedAt     time.Time         `gorm:"autoCreateTime"`
}

func (DocChunk) TableName() string {
	return "doc_chunks"
}
