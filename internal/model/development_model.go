package model

import (
	"time"

	"github.com/google/uuid"
)

type Development struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Development) TableName() string {
	return "developments"
}

// Project lives in the legacy content schema; only read for the
// development-to-project name mapping.
type Project struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:text"`
}

func (Project) TableName() string {
	return "projects"
}
