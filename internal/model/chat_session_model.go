package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DevelopmentId uuid.UUID  `gorm:"type:uuid;not null;index"`
	UnitId        *uuid.UUID `gorm:"type:uuid;index"`
	StartedAt     time.Time  `gorm:"autoCreateTime"`
	LastActiveAt  time.Time  `gorm:"not null"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
