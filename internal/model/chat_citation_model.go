package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatCitation struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatMessageId uuid.UUID  `gorm:"type:uuid;not null;index"`
	DocumentId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChunkId       *uuid.UUID `gorm:"type:uuid"`
	Score         float64    `gorm:"type:numeric;default:0"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`

	ChatMessage *ChatMessage `gorm:"foreignKey:ChatMessageId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Document    *Document    `gorm:"foreignKey:DocumentId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ChatCitation) TableName() string {
	return "chat_citations"
}
