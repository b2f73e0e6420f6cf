package mapper

import (
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/model"
)

type RoomDimensionMapper struct{}

func NewRoomDimensionMapper() *RoomDimensionMapper {
	return &RoomDimensionMapper{}
}

func (m *RoomDimensionMapper) ToEntity(d *model.UnitRoomDimension) *entity.UnitRoomDimension {
	if d == nil {
		return nil
	}

	return &entity.UnitRoomDimension{
		Id:            d.Id,
		TenantId:      d.TenantId,
		DevelopmentId: d.DevelopmentId,
		HouseTypeId:   d.HouseTypeId,
		UnitId:        d.UnitId,
		UnitTypeCode:  d.UnitTypeCode,
		RoomName:      d.RoomName,
		RoomKey:       d.RoomKey,
		Floor:         d.Floor,
		LengthM:       d.LengthM,
		WidthM:        d.WidthM,
		AreaSqm:       d.AreaSqm,
		CeilingHeight: d.CeilingHeight,
		Source:        d.Source,
		Verified:      d.Verified,
		Confidence:    d.Confidence,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *RoomDimensionMapper) ToEntities(dims []*model.UnitRoomDimension) []*entity.UnitRoomDimension {
	entities := make([]*entity.UnitRoomDimension, len(dims))
	for i, d := range dims {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

type IntelligenceProfileMapper struct{}

func NewIntelligenceProfileMapper() *IntelligenceProfileMapper {
	return &IntelligenceProfileMapper{}
}

func (m *IntelligenceProfileMapper) ToEntity(p *model.UnitIntelligenceProfile) *entity.UnitIntelligenceProfile {
	if p == nil {
		return nil
	}

	return &entity.UnitIntelligenceProfile{
		Id:            p.Id,
		TenantId:      p.TenantId,
		DevelopmentId: p.DevelopmentId,
		UnitId:        p.UnitId,
		HouseTypeCode: p.HouseTypeCode,
		ProfileScope:  p.ProfileScope,
		Version:       p.Version,
		IsCurrent:     p.IsCurrent,
		Status:        p.Status,
		QualityScore:  p.QualityScore,
		Rooms:         map[string]interface{}(p.Rooms),
		Suppliers:     map[string]interface{}(p.Suppliers),
		BerRating:     p.BerRating,
		Heating:       p.Heating,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type HouseTypeMapper struct{}

func NewHouseTypeMapper() *HouseTypeMapper {
	return &HouseTypeMapper{}
}

func (m *HouseTypeMapper) ToEntity(h *model.HouseType) *entity.HouseType {
	if h == nil {
		return nil
	}

	return &entity.HouseType{
		Id:                h.Id,
		TenantId:          h.TenantId,
		DevelopmentId:     h.DevelopmentId,
		HouseTypeCode:     h.HouseTypeCode,
		Name:              h.Name,
		Description:       h.Description,
		TotalFloorAreaSqm: h.TotalFloorAreaSqm,
		RoomDimensions:    map[string]interface{}(h.RoomDimensions),
		Dimensions:        map[string]interface{}(h.Dimensions),
		CreatedAt:         h.CreatedAt,
	}
}

type DeveloperSettingMapper struct{}

func NewDeveloperSettingMapper() *DeveloperSettingMapper {
	return &DeveloperSettingMapper{}
}

func (m *DeveloperSettingMapper) ToEntity(s *model.DeveloperSetting) *entity.DeveloperSetting {
	if s == nil {
		return nil
	}

	return &entity.DeveloperSetting{
		Id:        s.Id,
		TenantId:  s.TenantId,
		Key:       s.Key,
		Value:     map[string]interface{}(s.Value),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
