package mapper

import (
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/model"
)

type UnitMapper struct{}

func NewUnitMapper() *UnitMapper {
	return &UnitMapper{}
}

func (m *UnitMapper) ToEntity(u *model.Unit) *entity.Unit {
	if u == nil {
		return nil
	}

	return &entity.Unit{
		Id:            u.Id,
		TenantId:      u.TenantId,
		DevelopmentId: u.DevelopmentId,
		UnitNumber:    u.UnitNumber,
		AddressLine1:  u.AddressLine1,
		HouseTypeCode: u.HouseTypeCode,
		PurchaserName: u.PurchaserName,
		Bedrooms:      u.Bedrooms,
		Bathrooms:     u.Bathrooms,
		SquareFootage: u.SquareFootage,
		FloorAreaM2:   u.FloorAreaM2,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UnitMapper) ToEntities(units []*model.Unit) []*entity.Unit {
	entities := make([]*entity.Unit, len(units))
	for i, u := range units {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
