package dto

import (
	"github.com/google/uuid"
)

type DimensionLookupRequest struct {
	TenantId      uuid.UUID  `json:"tenant_id" validate:"required"`
	DevelopmentId uuid.UUID  `json:"development_id" validate:"required"`
	HouseTypeCode string     `json:"house_type_code" validate:"required"`
	RoomKey       string     `json:"room_key" validate:"required"`
	UnitId        *uuid.UUID `json:"unit_id"`
}

type RoomDimensionResponse struct {
	RoomKey        string   `json:"room_key"`
	RoomName       string   `json:"room_name"`
	LengthM        *float64 `json:"length_m,omitempty"`
	WidthM         *float64 `json:"width_m,omitempty"`
	AreaSqm        *float64 `json:"area_sqm,omitempty"`
	CeilingHeightM *float64 `json:"ceiling_height_m,omitempty"`
	Source         string   `json:"source"`
	Verified       bool     `json:"verified"`
	Confidence     float64  `json:"confidence"`
}

type DimensionLookupResponse struct {
	Found            bool                   `json:"found"`
	Room             *RoomDimensionResponse `json:"room,omitempty"`
	Reason           string                 `json:"reason,omitempty"`
	SuggestFloorplan bool                   `json:"suggest_floorplan,omitempty"`
}

type DimensionListResponse struct {
	HouseTypeCode string                   `json:"house_type_code"`
	Rooms         []*RoomDimensionResponse `json:"rooms"`
}

type DimensionSettingsResponse struct {
	Enabled          bool   `json:"enabled"`
	ShowDisclaimer   bool   `json:"show_disclaimer"`
	AttachFloorplans bool   `json:"attach_floorplans"`
	DisclaimerText   string `json:"disclaimer_text"`
}
