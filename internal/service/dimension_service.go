package service

import (
	"context"

	"property-assistant-be/internal/dto"
	"property-assistant-be/pkg/guardrail"

	"github.com/google/uuid"
)

type IDimensionService interface {
	Lookup(ctx context.Context, req *dto.DimensionLookupRequest) (*dto.DimensionLookupResponse, error)
	ListForHouseType(ctx context.Context, req *dto.DimensionLookupRequest) (*dto.DimensionListResponse, error)
	GetSettings(ctx context.Context, tenantId uuid.UUID) (*dto.DimensionSettingsResponse, error)
}

type dimensionService struct {
	lookup   *guardrail.Lookup
	settings *guardrail.SettingsProvider
}

func NewDimensionService(lookup *guardrail.Lookup, settings *guardrail.SettingsProvider) IDimensionService {
	return &dimensionService{
		lookup:   lookup,
		settings: settings,
	}
}

func (s *dimensionService) Lookup(ctx context.Context, req *dto.DimensionLookupRequest) (*dto.DimensionLookupResponse, error) {
	roomKey := guardrail.NormalizeRoomKey(req.RoomKey)

	result, err := s.lookup.GetRoomDimension(ctx, req.TenantId, req.DevelopmentId, req.HouseTypeCode, roomKey, req.UnitId)
	if err != nil {
		return nil, err
	}

	res := &dto.DimensionLookupResponse{
		Found:            result.Found,
		Reason:           result.Reason,
		SuggestFloorplan: result.SuggestFloorplan,
	}
	if result.Room != nil {
		res.Room = toRoomDimensionResponse(result.Room)
	}
	return res, nil
}

func (s *dimensionService) ListForHouseType(ctx context.Context, req *dto.DimensionLookupRequest) (*dto.DimensionListResponse, error) {
	rooms, err := s.lookup.GetAllRoomDimensions(ctx, req.TenantId, req.DevelopmentId, req.HouseTypeCode, req.UnitId)
	if err != nil {
		return nil, err
	}

	res := &dto.DimensionListResponse{
		HouseTypeCode: req.HouseTypeCode,
		Rooms:         make([]*dto.RoomDimensionResponse, 0, len(rooms)),
	}
	for _, room := range rooms {
		res.Rooms = append(res.Rooms, toRoomDimensionResponse(room))
	}
	return res, nil
}

func (s *dimensionService) GetSettings(ctx context.Context, tenantId uuid.UUID) (*dto.DimensionSettingsResponse, error) {
	settings := s.settings.Get(ctx, tenantId)
	return &dto.DimensionSettingsResponse{
		Enabled:          settings.Enabled,
		ShowDisclaimer:   settings.ShowDisclaimer,
		AttachFloorplans: settings.AttachFloorplans,
		DisclaimerText:   settings.DisclaimerText,
	}, nil
}

func toRoomDimensionResponse(room *guardrail.RoomDimension) *dto.RoomDimensionResponse {
	return &dto.RoomDimensionResponse{
		RoomKey:        room.RoomKey,
		RoomName:       room.RoomName,
		LengthM:        room.LengthM,
		WidthM:         room.WidthM,
		AreaSqm:        room.AreaSqm,
		CeilingHeightM: room.CeilingHeightM,
		Source:         room.Source,
		Verified:       room.Verified,
		Confidence:     room.Confidence,
	}
}
