package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnitIntelligenceProfile is the aggregated extraction result for a house
// type. Rooms is the raw JSON room map keyed by room name as extracted,
// so keys need canonical normalization before lookup.
type UnitIntelligenceProfile struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	UnitId        *uuid.UUID
	HouseTypeCode *string
	ProfileScope  string
	Version       int
	IsCurrent     bool
	Status        string
	QualityScore  float64
	Rooms         map[string]interface{}
	Suppliers     map[string]interface{}
	BerRating     *string
	Heating       *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
