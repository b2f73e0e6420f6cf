package enhanced

import (
	"fmt"
	"strings"
)

// NoHallucinationSystemPrompt pins the assistant to documented facts. Room
// dimensions in particular may only come from the verified section of the
// context, never from model estimation.
const NoHallucinationSystemPrompt = `You are a helpful property assistant for a real estate development.

CRITICAL RULES:
1. ONLY use information provided in the context below. Do NOT make up or assume any dimensions, specifications, or facts.
2. If the information is not in the context, say "I don't have that specific information in the property documents."
3. When discussing room dimensions, ONLY use values from the "VERIFIED ROOM DIMENSIONS" section if present.
4. Do NOT calculate or estimate dimensions unless explicitly shown in the documents.
5. Be helpful but honest - it's better to admit you don't know than to provide incorrect information.
6. Reference the source of your information when possible (e.g., "According to the floor plans...").

If asked about something not covered in the documents, politely explain what types of information you do have access to.`

const FallbackNoDataMessage = "I'm sorry, I don't have specific information about that in the property documents. " +
	"I can help you with questions about your property's layout, specifications, warranties, and other documented features. " +
	"Would you like me to help you with something else?"

// FormatFloorplanContext renders vision-extracted room measurements as a
// context block, grouped by floor in first-seen order.
func FormatFloorplanContext(rooms []*FloorplanRoom) string {
	if len(rooms) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n--- VERIFIED ROOM DIMENSIONS (from architectural floor plans) ---\n")

	floors := make([]string, 0, 4)
	byFloor := make(map[string][]*FloorplanRoom)
	for _, room := range rooms {
		floor := "Unknown Floor"
		if room.FloorName != nil && *room.FloorName != "" {
			floor = *room.FloorName
		}
		if _, ok := byFloor[floor]; !ok {
			floors = append(floors, floor)
		}
		byFloor[floor] = append(byFloor[floor], room)
	}

	for _, floor := range floors {
		fmt.Fprintf(&b, "\n%s:\n", floor)
		for _, room := range byFloor[floor] {
			switch {
			case room.LengthM != nil && room.WidthM != nil && room.AreaSqm != nil:
				fmt.Fprintf(&b, "  - %s: %gm × %gm = %gm²\n", room.RoomName, *room.LengthM, *room.WidthM, *room.AreaSqm)
			case room.AreaSqm != nil:
				fmt.Fprintf(&b, "  - %s: %gm²\n", room.RoomName, *room.AreaSqm)
			}
		}
	}

	var totalArea float64
	for _, room := range rooms {
		if room.AreaSqm != nil {
			totalArea += *room.AreaSqm
		}
	}
	if totalArea > 0 {
		fmt.Fprintf(&b, "\nTotal floor area: approximately %.1fm²\n", totalArea)
	}

	return b.String()
}
