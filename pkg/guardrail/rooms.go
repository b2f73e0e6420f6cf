package guardrail

import (
	"regexp"
	"strings"
)

// roomNameMappings maps each canonical room key to the phrasings residents
// actually use for it. Matching is plain substring over the lowercased
// question.
var roomNameMappings = map[string][]string{
	"toilet":         {"toilet", "wc", "downstairs toilet", "ground floor toilet", "cloakroom", "guest toilet", "powder room"},
	"living_room":    {"living room", "sitting room", "lounge", "front room", "living area", "reception room"},
	"kitchen":        {"kitchen"},
	"kitchen_dining": {"kitchen dining", "kitchen/dining", "open plan kitchen", "kitchen and dining"},
	"dining":         {"dining room", "dining area", "dining"},
	"utility":        {"utility", "utility room", "laundry", "storage"},
	"entrance_hall":  {"hall", "entrance", "hallway", "entrance hall", "front hall", "foyer"},
	"bedroom_1":      {"bedroom 1", "bedroom one", "main bedroom", "master bedroom", "primary bedroom"},
	"bedroom_2":      {"bedroom 2", "bedroom two", "second bedroom"},
	"bedroom_3":      {"bedroom 3", "bedroom three", "third bedroom"},
	"bedroom_4":      {"bedroom 4", "bedroom four", "fourth bedroom"},
	"ensuite":        {"ensuite", "en-suite", "en suite", "master bathroom", "master ensuite", "ensuite bathroom"},
	"bathroom":       {"bathroom", "main bathroom", "family bathroom", "upstairs bathroom"},
	"landing":        {"landing", "upstairs landing", "upper landing", "stairs landing"},
	"garage":         {"garage", "car port", "carport"},
	"study":          {"study", "office", "home office", "box room"},
	"hotpress":       {"hotpress", "hot press", "airing cupboard", "boiler room"},
}

// orderedRoomKeys controls extraction precedence. Compound rooms come
// first so "kitchen dining" is not claimed by the bare "kitchen" key, and
// specific variants beat generic ones.
var orderedRoomKeys = []string{
	"kitchen_dining",
	"bedroom_1", "bedroom_2", "bedroom_3", "bedroom_4",
	"living_room", "entrance_hall", "ensuite",
	"toilet", "kitchen", "dining", "utility", "bathroom",
	"landing", "garage", "study", "hotpress",
}

var roomDisplayNames = map[string]string{
	"toilet":         "toilet",
	"living_room":    "living room",
	"kitchen":        "kitchen",
	"kitchen_dining": "kitchen/dining area",
	"dining":         "dining room",
	"utility":        "utility room",
	"entrance_hall":  "entrance hall",
	"bedroom_1":      "main bedroom",
	"bedroom_2":      "second bedroom",
	"bedroom_3":      "third bedroom",
	"bedroom_4":      "fourth bedroom",
	"ensuite":        "ensuite bathroom",
	"bathroom":       "bathroom",
	"landing":        "landing",
	"garage":         "garage",
	"study":          "study",
	"hotpress":       "hot press",
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonKeyChars   = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// NormalizeRoomKey folds a free-form room label into key form. The
// operation is idempotent: normalizing a key yields the same key.
func NormalizeRoomKey(name string) string {
	key := strings.TrimSpace(strings.ToLower(name))
	key = whitespaceRun.ReplaceAllString(key, "_")
	key = nonKeyChars.ReplaceAllString(key, "")
	return underscoreRun.ReplaceAllString(key, "_")
}

// FormatRoomName renders a room key for resident-facing text.
func FormatRoomName(key string) string {
	if name, ok := roomDisplayNames[key]; ok {
		return name
	}
	return strings.ReplaceAll(key, "_", " ")
}

// ExtractRoomKey finds the first canonical room the question mentions, in
// precedence order. Returns "" when no known room phrase appears.
func ExtractRoomKey(question string) string {
	lower := strings.ToLower(question)
	for _, key := range orderedRoomKeys {
		for _, variant := range roomNameMappings[key] {
			if strings.Contains(lower, variant) {
				return key
			}
		}
	}
	return ""
}
