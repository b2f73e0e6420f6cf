package model

import (
	"time"

	"github.com/google/uuid"
)

type UnitRoomDimension struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID  `gorm:"type:uuid;not null;index:idx_urd_tenant_dev_house,priority:1"`
	DevelopmentId uuid.UUID  `gorm:"type:uuid;not null;index:idx_urd_tenant_dev_house,priority:2"`
	HouseTypeId   *uuid.UUID `gorm:"type:uuid;index:idx_urd_tenant_dev_house,priority:3"`
	UnitId        *uuid.UUID `gorm:"type:uuid;index"`
	UnitTypeCode  *string    `gorm:"type:text;index"`
	RoomName      string     `gorm:"type:text;not null"`
	RoomKey       string     `gorm:"type:text;not null;index"`
	Floor         *string    `gorm:"type:text"`
	LengthM       *float64   `gorm:"type:decimal(6,2)"`
	WidthM        *float64   `gorm:"type:decimal(6,2)"`
	AreaSqm       *float64   `gorm:"type:decimal(7,2)"`
	CeilingHeight *float64   `gorm:"type:decimal(5,2);column:ceiling_height_m"`
	Source        string     `gorm:"type:text;not null;default:'unknown'"`
	Verified      bool       `gorm:"not null;default:false"`
	Confidence    float64    `gorm:"default:0"`
	Notes         *string    `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime"`
}

func (UnitRoomDimension) TableName() string {
	return "unit_room_dimensions"
}
