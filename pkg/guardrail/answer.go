package guardrail

import (
	"context"
	"fmt"
	"strings"

	"property-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
)

const SafeDimensionFallback = "I don't have verified room dimensions for that space in my database yet. " +
	"However, your official floor plan shows all room measurements clearly. " +
	"You can find it in your Documents section under 'Floor Plans'. " +
	"Would you like me to help you locate your floor plan?"

func safeDimensionFallbackFor(roomName, houseTypeCode string) string {
	return fmt.Sprintf("I don't have the exact dimensions for the %s in your %s stored yet. "+
		"Your official floor plan shows all room measurements clearly - you can find it in your Documents section. "+
		"The floor plan is the most accurate source for room dimensions.", roomName, houseTypeCode)
}

var sourceDescriptions = map[string]string{
	SourceVerifiedUnit:        "verified measurements for your specific unit",
	SourceVerifiedHouseType:   "verified measurements for your house type",
	SourceVisionFloorplan:     "extracted from your floor plans",
	SourceIntelligenceProfile: "extracted from your documents",
	SourceHouseTypes:          "from the specifications",
	SourceManual:              "from manual entry",
}

// FormatGroundedAnswer renders a resolved dimension as the full resident
// reply, with provenance, verification caveat, and the tenant's
// disclaimer and floorplan pointer per settings.
func FormatGroundedAnswer(room *RoomDimension, houseTypeCode, address string, settings Settings) string {
	var parts []string

	if room.LengthM != nil && room.WidthM != nil {
		parts = append(parts, fmt.Sprintf("Your %s measures approximately %.1fm × %.1fm", room.RoomName, *room.LengthM, *room.WidthM))
		area := *room.LengthM * *room.WidthM
		if room.AreaSqm != nil {
			area = *room.AreaSqm
		}
		parts = append(parts, fmt.Sprintf("giving a floor area of %.1f m²", area))
	} else if room.AreaSqm != nil {
		parts = append(parts, fmt.Sprintf("Your %s has a floor area of approximately %.1f m²", room.RoomName, *room.AreaSqm))
	}

	if room.CeilingHeightM != nil {
		parts = append(parts, fmt.Sprintf("with a ceiling height of %.2fm", *room.CeilingHeightM))
	}

	answer := strings.Join(parts, ", ") + "."

	sourceDesc, ok := sourceDescriptions[room.Source]
	if !ok {
		sourceDesc = "from available data"
	}
	answer += fmt.Sprintf(" This is based on %s for your %s house type", sourceDesc, houseTypeCode)
	if address != "" {
		answer += " at " + address
	}
	answer += "."

	if !room.Verified && room.Source != SourceHouseTypes {
		answer += " Note: These dimensions are from automated extraction and may require verification."
	}

	if settings.ShowDisclaimer && settings.DisclaimerText != "" {
		answer += "\n\n📋 **Important:** " + settings.DisclaimerText
	}

	if settings.AttachFloorplans {
		answer += "\n\nFor complete accuracy, you can view your official floor plan in the Documents section."
	}

	return answer
}

// Dimension entries below this confidence get the safe fallback instead
// of a grounded answer.
const groundedConfidenceFloor = 0.75

type Result struct {
	ShouldIntercept  bool
	GroundedAnswer   string
	RoomKey          string
	LookupSuccessful bool
	SuggestFloorplan bool
}

// Guardrail intercepts dimension questions before they reach the LLM and
// answers them only from stored measurements.
type Guardrail struct {
	lookup   *Lookup
	settings *SettingsProvider
	log      logger.ILogger
}

func NewGuardrail(lookup *Lookup, settings *SettingsProvider, log logger.ILogger) *Guardrail {
	return &Guardrail{
		lookup:   lookup,
		settings: settings,
		log:      log,
	}
}

// Apply inspects the question and, when it is a dimension question,
// produces the full grounded or fallback reply. ShouldIntercept false
// means the question flows on to normal retrieval.
func (g *Guardrail) Apply(ctx context.Context, question string, tenantId, developmentId uuid.UUID, houseTypeCode, address string, unitId *uuid.UUID) (*Result, error) {
	if !IsDimensionQuestion(question) {
		return &Result{ShouldIntercept: false}, nil
	}

	settings := g.settings.Get(ctx, tenantId)

	if !settings.Enabled {
		answer := "Room dimension information is not currently available. Please contact your developer for this information."
		if settings.AttachFloorplans {
			answer = "For room dimensions, please refer to your official floor plan in the Documents section. The floor plan shows all room measurements clearly."
		}
		return &Result{
			ShouldIntercept:  true,
			GroundedAnswer:   answer,
			RoomKey:          ExtractRoomKey(question),
			SuggestFloorplan: settings.AttachFloorplans,
		}, nil
	}

	roomKey := ExtractRoomKey(question)
	if roomKey == "" {
		return &Result{ShouldIntercept: false}, nil
	}

	if houseTypeCode == "" {
		g.log.Warn("guardrail", "no house type code, cannot look up dimensions", map[string]interface{}{
			"tenant_id": tenantId.String(),
		})
		return &Result{
			ShouldIntercept:  true,
			GroundedAnswer:   SafeDimensionFallback,
			RoomKey:          roomKey,
			SuggestFloorplan: true,
		}, nil
	}

	lookup, err := g.lookup.GetRoomDimension(ctx, tenantId, developmentId, houseTypeCode, roomKey, unitId)
	if err != nil {
		return nil, err
	}

	if lookup.Found && lookup.Room != nil {
		room := lookup.Room
		if room.Confidence >= groundedConfidenceFloor && (room.LengthM != nil || room.AreaSqm != nil) {
			return &Result{
				ShouldIntercept:  true,
				GroundedAnswer:   FormatGroundedAnswer(room, houseTypeCode, address, settings),
				RoomKey:          roomKey,
				LookupSuccessful: true,
			}, nil
		}
		g.log.Warn("guardrail", "low confidence dimension, using safe fallback", map[string]interface{}{
			"room_key":   roomKey,
			"confidence": room.Confidence,
		})
		return &Result{
			ShouldIntercept:  true,
			GroundedAnswer:   safeDimensionFallbackFor(room.RoomName, houseTypeCode),
			RoomKey:          roomKey,
			SuggestFloorplan: true,
		}, nil
	}

	return &Result{
		ShouldIntercept:  true,
		GroundedAnswer:   safeDimensionFallbackFor(FormatRoomName(roomKey), houseTypeCode),
		RoomKey:          roomKey,
		SuggestFloorplan: true,
	}, nil
}
