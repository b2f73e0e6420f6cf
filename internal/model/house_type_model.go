package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type HouseType struct {
	Id                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId          uuid.UUID         `gorm:"type:uuid;not null;index"`
	DevelopmentId     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:unique_dev_house_type_idx,priority:1"`
	HouseTypeCode     string            `gorm:"type:text;not null;uniqueIndex:unique_dev_house_type_idx,priority:2"`
	Name              *string           `gorm:"type:text"`
	Description       *string           `gorm:"type:text"`
	TotalFloorAreaSqm *float64          `gorm:"type:decimal(10,2)"`
	RoomDimensions    datatypes.JSONMap `gorm:"type:jsonb"`
	Dimensions        datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt         time.Time         `gorm:"autoCreateTime"`
}

func (HouseType) TableName() string {
	return "house_types"
}
