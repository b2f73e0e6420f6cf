package dto

import (
	"github.com/google/uuid"
)

type SearchRequest struct {
	TenantId      uuid.UUID `json:"tenant_id" validate:"required"`
	DevelopmentId uuid.UUID `json:"development_id" validate:"required"`
	HouseTypeCode string    `json:"house_type_code"`
	Query         string    `json:"query" validate:"required,min=2"`
	Limit         int       `json:"limit"`
}

type SearchChunkResponse struct {
	Id            string                 `json:"id"`
	Content       string                 `json:"content"`
	DocumentId    string                 `json:"document_id,omitempty"`
	DocumentTitle string                 `json:"document_title,omitempty"`
	DocKind       string                 `json:"doc_kind,omitempty"`
	VectorScore   float64                `json:"vector_score"`
	KeywordScore  float64                `json:"keyword_score,omitempty"`
	FinalScore    float64                `json:"final_score"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type HybridSearchResponse struct {
	Chunks []SearchChunkResponse `json:"chunks"`
}

type FloorplanRoomResponse struct {
	RoomName   string   `json:"room_name"`
	RoomKey    string   `json:"room_key"`
	FloorName  *string  `json:"floor_name,omitempty"`
	LengthM    *float64 `json:"length_m,omitempty"`
	WidthM     *float64 `json:"width_m,omitempty"`
	AreaSqm    *float64 `json:"area_sqm,omitempty"`
	Confidence float64  `json:"confidence"`
}

type EnhancedSearchResponse struct {
	Chunks        []SearchChunkResponse   `json:"chunks"`
	FloorplanData []FloorplanRoomResponse `json:"floorplan_data,omitempty"`
	QuestionType  string                  `json:"question_type"`
	ScopeUsed     string                  `json:"scope_used"`
	TotalChunks   int                     `json:"total_chunks"`
}
