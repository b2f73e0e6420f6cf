package model

import (
	"time"

	"github.com/google/uuid"
)

type Unit struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DevelopmentId uuid.UUID  `gorm:"type:uuid;not null;index"`
	UnitNumber    string     `gorm:"type:text;not null"`
	AddressLine1  string     `gorm:"type:text"`
	HouseTypeCode string     `gorm:"type:text;index"`
	PurchaserName *string    `gorm:"type:text"`
	Bedrooms      *int       `gorm:"type:int"`
	Bathrooms     *int       `gorm:"type:int"`
	SquareFootage *float64   `gorm:"type:numeric"`
	FloorAreaM2   *float64   `gorm:"type:numeric"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime"`
}

func (Unit) TableName() string {
	return "units"
}
