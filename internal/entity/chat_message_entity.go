package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one question/answer exchange, logged with its answering
// source, token cost, and cited documents.
type ChatMessage struct {
	Id               uuid.UUID
	TenantId         uuid.UUID
	DevelopmentId    uuid.UUID
	SessionId        *uuid.UUID
	UnitId           *uuid.UUID
	UserMessage      string
	AiMessage        string
	Source           string
	TokenCount       int
	CostUsd          float64
	LatencyMs        int
	CitedDocumentIds []string
	Metadata         map[string]interface{}
	CreatedAt        time.Time
}
