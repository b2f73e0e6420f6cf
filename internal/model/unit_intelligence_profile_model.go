package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UnitIntelligenceProfile struct {
	Id            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID         `gorm:"type:uuid;not null;index"`
	DevelopmentId uuid.UUID         `gorm:"type:uuid;not null;index"`
	UnitId        *uuid.UUID        `gorm:"type:uuid;index"`
	HouseTypeCode *string           `gorm:"type:text;index"`
	ProfileScope  string            `gorm:"type:varchar(20);not null;default:'house_type'"`
	Version       int               `gorm:"default:1;not null"`
	IsCurrent     bool              `gorm:"default:true;not null;index"`
	Status        string            `gorm:"type:varchar(20);default:'draft';not null"`
	QualityScore  float64           `gorm:"default:0"`
	Rooms         datatypes.JSONMap `gorm:"type:jsonb"`
	Suppliers     datatypes.JSONMap `gorm:"type:jsonb"`
	BerRating     *string           `gorm:"type:text"`
	Heating       *string           `gorm:"type:text"`
	CreatedAt     time.Time         `gorm:"autoCreateTime"`
	UpdatedAt     *time.Time        `gorm:"autoUpdateTime"`
}

func (UnitIntelligenceProfile) TableName() string {
	return "unit_intelligence_profiles"
}
