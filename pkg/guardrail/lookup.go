package guardrail

import (
	"context"
	"sort"
	"strconv"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
)

// Dimension sources, in decreasing order of trust.
const (
	SourceVerifiedUnit        = "verified_unit"
	SourceVerifiedHouseType   = "verified_house_type"
	SourceVisionFloorplan     = "vision_floorplan"
	SourceIntelligenceProfile = "intelligence_profile"
	SourceHouseTypes          = "house_types"
	SourceManual              = "manual"
)

// Default confidences applied when a row carries none, by source tier.
const (
	verifiedDefaultConfidence   = 0.95
	unverifiedDefaultConfidence = 0.7
	profileDefaultConfidence    = 0.8
)

// RoomDimension is one resolved room measurement with its provenance.
type RoomDimension struct {
	RoomName       string
	RoomKey        string
	Floor          *string
	LengthM        *float64
	WidthM         *float64
	AreaSqm        *float64
	CeilingHeightM *float64
	Confidence     float64
	Verified       bool
	UnitId         *uuid.UUID
	Source         string
}

type LookupResult struct {
	Found            bool
	Room             *RoomDimension
	HouseTypeCode    string
	Reason           string
	SuggestFloorplan bool
}

// Lookup resolves room dimensions through the source hierarchy: verified
// unit rows, verified house-type rows, unverified vision rows, the
// intelligence profile JSON, then the house_types template JSON. Source
// read failures log and fall through to the next priority.
type Lookup struct {
	rooms      contract.UnitRoomDimensionRepository
	profiles   contract.IntelligenceProfileRepository
	houseTypes contract.HouseTypeRepository
	log        logger.ILogger
}

func NewLookup(
	rooms contract.UnitRoomDimensionRepository,
	profiles contract.IntelligenceProfileRepository,
	houseTypes contract.HouseTypeRepository,
	log logger.ILogger,
) *Lookup {
	return &Lookup{
		rooms:      rooms,
		profiles:   profiles,
		houseTypes: houseTypes,
		log:        log,
	}
}

func defaultConfidence(confidence, fallback float64) float64 {
	if confidence > 0 {
		return confidence
	}
	return fallback
}

func fromRow(row *entity.UnitRoomDimension, roomKey, source string, fallbackConfidence float64) *RoomDimension {
	return &RoomDimension{
		RoomName:       FormatRoomName(roomKey),
		RoomKey:        roomKey,
		Floor:          row.Floor,
		LengthM:        row.LengthM,
		WidthM:         row.WidthM,
		AreaSqm:        row.AreaSqm,
		CeilingHeightM: row.CeilingHeight,
		Confidence:     defaultConfidence(row.Confidence, fallbackConfidence),
		Verified:       row.Verified,
		UnitId:         row.UnitId,
		Source:         source,
	}
}

// numField reads a numeric JSON field that may arrive as float64 or a
// numeric string depending on how the extractor wrote it.
func numField(m map[string]interface{}, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func roomEntry(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func computedArea(area, length, width *float64) *float64 {
	if area != nil {
		return area
	}
	if length != nil && width != nil {
		a := *length * *width
		return &a
	}
	return nil
}

// findRoomEntry returns the entry under the exact key, then under any key
// that normalizes to the same value. hasDims decides whether an entry
// counts as populated for the map's field naming.
func findRoomEntry(rooms map[string]interface{}, roomKey string, hasDims func(map[string]interface{}) bool) (string, map[string]interface{}) {
	if entry := roomEntry(rooms[roomKey]); entry != nil && hasDims(entry) {
		return roomKey, entry
	}

	normalized := NormalizeRoomKey(roomKey)
	for key, v := range rooms {
		entry := roomEntry(v)
		if entry == nil || !hasDims(entry) {
			continue
		}
		if NormalizeRoomKey(key) == normalized {
			return key, entry
		}
	}
	return "", nil
}

func hasMetricDims(entry map[string]interface{}) bool {
	return numField(entry, "length_m") != nil || numField(entry, "area_sqm") != nil
}

func hasShortDims(entry map[string]interface{}) bool {
	return numField(entry, "length") != nil || numField(entry, "area") != nil
}

func (l *Lookup) logMiss(stage string, err error) {
	l.log.Warn("guardrail", "dimension source read failed", map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
}

// GetRoomDimension resolves one room for a resident, walking the source
// hierarchy until a populated entry is found.
func (l *Lookup) GetRoomDimension(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode, roomKey string, unitId *uuid.UUID) (*LookupResult, error) {
	if unitId != nil {
		row, err := l.rooms.FindVerifiedUnitRoom(ctx, tenantId, *unitId, roomKey)
		if err != nil {
			l.logMiss("verified_unit", err)
		} else if row != nil {
			return &LookupResult{
				Found:         true,
				Room:          fromRow(row, roomKey, SourceVerifiedUnit, verifiedDefaultConfidence),
				HouseTypeCode: houseTypeCode,
			}, nil
		}
	}

	row, err := l.rooms.FindVerifiedHouseTypeRoom(ctx, tenantId, houseTypeCode, roomKey)
	if err != nil {
		l.logMiss("verified_house_type", err)
	} else if row != nil {
		return &LookupResult{
			Found:         true,
			Room:          fromRow(row, roomKey, SourceVerifiedHouseType, verifiedDefaultConfidence),
			HouseTypeCode: houseTypeCode,
		}, nil
	}

	row, err = l.rooms.FindUnverifiedRoom(ctx, tenantId, houseTypeCode, roomKey)
	if err != nil {
		l.logMiss("vision_floorplan", err)
	} else if row != nil {
		return &LookupResult{
			Found:         true,
			Room:          fromRow(row, roomKey, SourceVisionFloorplan, unverifiedDefaultConfidence),
			HouseTypeCode: houseTypeCode,
		}, nil
	}

	profile, err := l.profiles.FindCurrentByHouseType(ctx, tenantId, developmentId, houseTypeCode)
	if err != nil {
		l.logMiss("intelligence_profile", err)
	} else if profile != nil && profile.Rooms != nil {
		if key, entry := findRoomEntry(profile.Rooms, roomKey, hasMetricDims); entry != nil {
			length := numField(entry, "length_m")
			width := numField(entry, "width_m")
			confidence := 0.0
			if c := numField(entry, "confidence"); c != nil {
				confidence = *c
			}
			return &LookupResult{
				Found: true,
				Room: &RoomDimension{
					RoomName:   FormatRoomName(key),
					RoomKey:    key,
					LengthM:    length,
					WidthM:     width,
					AreaSqm:    computedArea(numField(entry, "area_sqm"), length, width),
					Confidence: defaultConfidence(confidence, profileDefaultConfidence),
					Verified:   false,
					Source:     SourceIntelligenceProfile,
				},
				HouseTypeCode: houseTypeCode,
			}, nil
		}
	}

	houseType, err := l.houseTypes.FindByCode(ctx, developmentId, houseTypeCode)
	if err != nil {
		l.logMiss("house_types", err)
	} else if houseType != nil {
		if houseType.Dimensions != nil {
			if key, entry := findRoomEntry(houseType.Dimensions, roomKey, hasShortDims); entry != nil {
				length := numField(entry, "length")
				width := numField(entry, "width")
				return &LookupResult{
					Found: true,
					Room: &RoomDimension{
						RoomName:   FormatRoomName(key),
						RoomKey:    key,
						LengthM:    length,
						WidthM:     width,
						AreaSqm:    computedArea(numField(entry, "area"), length, width),
						Confidence: 1.0,
						Verified:   false,
						Source:     SourceHouseTypes,
					},
					HouseTypeCode: houseTypeCode,
				}, nil
			}
		}
		if houseType.RoomDimensions != nil {
			if key, entry := findRoomEntry(houseType.RoomDimensions, roomKey, hasMetricDims); entry != nil {
				length := numField(entry, "length_m")
				width := numField(entry, "width_m")
				return &LookupResult{
					Found: true,
					Room: &RoomDimension{
						RoomName:   FormatRoomName(key),
						RoomKey:    key,
						LengthM:    length,
						WidthM:     width,
						AreaSqm:    computedArea(numField(entry, "area_sqm"), length, width),
						Confidence: 1.0,
						Verified:   false,
						Source:     SourceHouseTypes,
					},
					HouseTypeCode: houseTypeCode,
				}, nil
			}
		}
	}

	return &LookupResult{
		Found:            false,
		Reason:           "No verified dimension data found for \"" + FormatRoomName(roomKey) + "\" in " + houseTypeCode,
		HouseTypeCode:    houseTypeCode,
		SuggestFloorplan: true,
	}, nil
}

// GetAllRoomDimensions merges every source for a house type into one map,
// most trusted source winning per room key.
func (l *Lookup) GetAllRoomDimensions(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, unitId *uuid.UUID) ([]*RoomDimension, error) {
	merged := make(map[string]*RoomDimension)
	order := make([]string, 0, 16)

	add := func(key string, room *RoomDimension) {
		if _, ok := merged[key]; ok {
			return
		}
		merged[key] = room
		order = append(order, key)
	}

	if unitId != nil {
		rows, err := l.rooms.ListVerifiedUnitRooms(ctx, tenantId, *unitId)
		if err != nil {
			l.logMiss("verified_unit", err)
		}
		for _, row := range rows {
			add(row.RoomKey, fromRow(row, row.RoomKey, SourceVerifiedUnit, verifiedDefaultConfidence))
		}
	}

	rows, err := l.rooms.ListVerifiedHouseTypeRooms(ctx, tenantId, houseTypeCode)
	if err != nil {
		l.logMiss("verified_house_type", err)
	}
	for _, row := range rows {
		add(row.RoomKey, fromRow(row, row.RoomKey, SourceVerifiedHouseType, verifiedDefaultConfidence))
	}

	rows, err = l.rooms.ListUnverifiedRooms(ctx, tenantId, houseTypeCode)
	if err != nil {
		l.logMiss("vision_floorplan", err)
	}
	for _, row := range rows {
		add(row.RoomKey, fromRow(row, row.RoomKey, SourceVisionFloorplan, unverifiedDefaultConfidence))
	}

	profile, err := l.profiles.FindCurrentByHouseType(ctx, tenantId, developmentId, houseTypeCode)
	if err != nil {
		l.logMiss("intelligence_profile", err)
	} else if profile != nil {
		for _, key := range sortedKeys(profile.Rooms) {
			entry := roomEntry(profile.Rooms[key])
			if entry == nil || !hasMetricDims(entry) {
				continue
			}
			confidence := 0.0
			if c := numField(entry, "confidence"); c != nil {
				confidence = *c
			}
			add(key, &RoomDimension{
				RoomName:   FormatRoomName(key),
				RoomKey:    key,
				LengthM:    numField(entry, "length_m"),
				WidthM:     numField(entry, "width_m"),
				AreaSqm:    numField(entry, "area_sqm"),
				Confidence: defaultConfidence(confidence, profileDefaultConfidence),
				Verified:   false,
				Source:     SourceIntelligenceProfile,
			})
		}
	}

	houseType, err := l.houseTypes.FindByCode(ctx, developmentId, houseTypeCode)
	if err != nil {
		l.logMiss("house_types", err)
	} else if houseType != nil {
		for _, key := range sortedKeys(houseType.RoomDimensions) {
			entry := roomEntry(houseType.RoomDimensions[key])
			if entry == nil || !hasMetricDims(entry) {
				continue
			}
			add(key, &RoomDimension{
				RoomName:   FormatRoomName(key),
				RoomKey:    key,
				LengthM:    numField(entry, "length_m"),
				WidthM:     numField(entry, "width_m"),
				AreaSqm:    numField(entry, "area_sqm"),
				Confidence: 1.0,
				Verified:   false,
				Source:     SourceHouseTypes,
			})
		}
	}

	result := make([]*RoomDimension, len(order))
	for i, key := range order {
		result[i] = merged[key]
	}
	return result, nil
}
