package retrieval

import (
	"github.com/google/uuid"
)

type Tier string

const (
	TierUnit        Tier = "unit"
	TierHouseType   Tier = "house_type"
	TierImportant   Tier = "important"
	TierDevelopment Tier = "development"
	TierGlobal      Tier = "global"
)

// TierWeights order tiers by specificity and trust; the weight multiplies
// the hybrid score so a lower tier can outrank a higher one only with a
// much stronger match.
var TierWeights = map[Tier]float64{
	TierUnit:        1.0,
	TierHouseType:   0.9,
	TierImportant:   0.8,
	TierDevelopment: 0.7,
	TierGlobal:      0.4,
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const (
	confidenceHighThreshold   = 0.85
	confidenceMediumThreshold = 0.6
)

// ScoredChunk is one candidate after scoring, unified across the chunk and
// legacy-section schemas so ranking never sees the difference.
type ScoredChunk struct {
	Id            uuid.UUID
	Content       string
	DocumentId    *uuid.UUID
	DocumentTitle string
	HouseTypeCode *string
	UnitId        string
	VectorScore   float64
	KeywordScore  float64
	TierWeight    float64
	FinalScore    float64
	Metadata      map[string]interface{}
	Tier          Tier
}

type Result struct {
	Chunks          []*ScoredChunk
	Confidence      Confidence
	ConfidenceScore float64
	TierBreakdown   map[string]int
	SuggestFallback bool
}

type Options struct {
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	UnitId        string
	HouseTypeCode string
	Query         string
	Limit         int
	// IncludeGlobalFallback enables the tenant-wide tier when too few
	// candidates were collected.
	IncludeGlobalFallback bool
}
