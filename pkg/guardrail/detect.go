package guardrail

import "regexp"

// A dimension question needs both a room reference and a size phrasing.
// Exclusions veto first: questions about ratings, systems, warranties or
// suppliers mention rooms without asking for measurements.
var dimensionQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:what|how\s+big|what\s+size|what\s+are\s+the\s+dimension|tell\s+me\s+the\s+size|what\s+is\s+the\s+size|how\s+large)`),
	regexp.MustCompile(`(?i)(?:floor\s+area|room\s+(?:size|dimension)|sqm|m²|square\s+met(?:er|re)s?\s+(?:of|for|in))`),
	regexp.MustCompile(`(?i)how\s+(?:big|large|wide|long)\s+is\s+(?:the|my)`),
	regexp.MustCompile(`(?i)size\s+(?:of|is)\s+(?:the|my)`),
	regexp.MustCompile(`(?i)dimension(?:s)?\s+(?:of|for)`),
}

var dimensionExclusionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:ber|energy)\s+rating`),
	regexp.MustCompile(`(?i)(?:heating|cooling|ventilation)\s+system`),
	regexp.MustCompile(`(?i)(?:warranty|guarantee)`),
	regexp.MustCompile(`(?i)(?:when|who|what\s+company|supplier)`),
}

// IsDimensionQuestion reports whether the question should be intercepted
// by the dimension guardrail instead of going straight to retrieval.
func IsDimensionQuestion(question string) bool {
	for _, p := range dimensionExclusionPatterns {
		if p.MatchString(question) {
			return false
		}
	}

	hasRoom := ExtractRoomKey(question) != ""
	if !hasRoom {
		return false
	}

	for _, p := range dimensionQuestionPatterns {
		if p.MatchString(question) {
			return true
		}
	}
	return false
}
