package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DevelopmentId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title         string     `gorm:"type:text"`
	DocumentType  string     `gorm:"type:text"`
	HouseTypeCode *string    `gorm:"type:text"`
	IsImportant   bool       `gorm:"default:false"`
	Status        string     `gorm:"type:text;default:'pending'"`
	ExtractedText *string    `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
