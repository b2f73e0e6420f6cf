package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id               uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId         uuid.UUID         `gorm:"type:uuid;not null;index"`
	DevelopmentId    uuid.UUID         `gorm:"type:uuid;not null;index"`
	SessionId        *uuid.UUID        `gorm:"type:uuid;index"`
	UnitId           *uuid.UUID        `gorm:"type:uuid;index"`
	UserMessage      string            `gorm:"type:text;not null"`
	AiMessage        string            `gorm:"type:text;not null"`
	Source           string            `gorm:"type:text;not null"`
	TokenCount       int               `gorm:"type:int;default:0"`
	CostUsd          float64           `gorm:"type:numeric;default:0"`
	LatencyMs        int               `gorm:"type:int;default:0"`
	CitedDocumentIds datatypes.JSON    `gorm:"type:jsonb"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt        time.Time         `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
