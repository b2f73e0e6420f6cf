package dto

import (
	"github.com/google/uuid"
)

type ChatAskRequest struct {
	TenantId      uuid.UUID  `json:"tenant_id" validate:"required"`
	DevelopmentId uuid.UUID  `json:"development_id" validate:"required"`
	UnitId        *uuid.UUID `json:"unit_id"`
	SessionId     *uuid.UUID `json:"session_id"`
	Message       string     `json:"message" validate:"required,min=2"`
}

type ChatCitationResponse struct {
	DocumentId    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Tier          string  `json:"tier"`
	Score         float64 `json:"score"`
}

type ChatAskResponse struct {
	Answer           string                 `json:"answer"`
	Source           string                 `json:"source"`
	Confidence       string                 `json:"confidence,omitempty"`
	ChunksUsed       int                    `json:"chunks_used"`
	TierBreakdown    map[string]int         `json:"tier_breakdown,omitempty"`
	Citations        []ChatCitationResponse `json:"citations,omitempty"`
	SuggestFallback  bool                   `json:"suggest_fallback,omitempty"`
	SuggestFloorplan bool                   `json:"suggest_floorplan,omitempty"`
	LatencyMs        int64                  `json:"latency_ms"`
}
