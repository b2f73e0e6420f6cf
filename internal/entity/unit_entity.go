package entity

import (
	"time"

	"github.com/google/uuid"
)

// Unit is one purchasable home. HouseTypeCode links it to the shared
// house type template its documents and dimensions are keyed on.
type Unit struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	UnitNumber    string
	AddressLine1  string
	HouseTypeCode string
	PurchaserName *string
	Bedrooms      *int
	Bathrooms     *int
	SquareFootage *float64
	FloorAreaM2   *float64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
