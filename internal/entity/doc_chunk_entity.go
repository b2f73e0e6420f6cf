package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocChunk is one retrievable piece of document text with its embedding.
// Chunks are produced at ingestion time and are read-only at query time.
type DocChunk struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	DocumentId    *uuid.UUID
	DocumentTitle *string
	DocumentType  *string
	HouseTypeCode *string
	DocKind       *string
	Content       string
	ChunkIndex    int
	Metadata      map[string]interface{}
	Embedding     []float32
	CreatedAt     time.Time
}

// UnitId reads the unit scope tag out of chunk metadata, checking both
// keys the ingestion pipeline has historically written.
func (c *DocChunk) UnitId() string {
	if c.Metadata == nil {
		return ""
	}
	if v, ok := c.Metadata["unit_id"].(string); ok && v != "" {
		return v
	}
	if v, ok := c.Metadata["unit_uid"].(string); ok {
		return v
	}
	return ""
}

// IsImportant reports whether the chunk metadata carries the importance flag.
func (c *DocChunk) IsImportant() bool {
	if c.Metadata == nil {
		return false
	}
	switch v := c.Metadata["is_important"].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
