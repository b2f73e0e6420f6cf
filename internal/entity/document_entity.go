package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	Title         string
	DocumentType  string
	HouseTypeCode *string
	IsImportant   bool
	Status        string
	ExtractedText *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
