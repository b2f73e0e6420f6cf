package guardrail

import "regexp"

var (
	dimensionValueRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:m\b|m²|meters?|metres?|square\s*met(?:er|re)s?)`)
	dimensionCrossRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:m\b|meters?|metres?)?\s*(?:x|×|by)\s*(\d+(?:\.\d+)?)\s*(?:m\b|meters?|metres?)?`)
	areaPhraseRegex     = regexp.MustCompile(`(?i)approximately\s+\d+(?:\.\d+)?\s*m²|floor\s+area\s+of\s+(?:about\s+)?\d+(?:\.\d+)?`)
)

const fabricatedDimensionReplacement = "I don't have the exact dimensions for that room in my database yet. " +
	"Your official floor plan shows all room measurements clearly - you can find it in your Documents section under 'Floor Plans'."

// ContainsFabricatedDimensions reports whether free-generated text claims
// specific measurements. Only applies when the canonical lookup failed: a
// successful lookup means any numbers came from stored data.
func ContainsFabricatedDimensions(text string, lookupSuccessful bool) bool {
	if lookupSuccessful {
		return false
	}

	if matches := dimensionValueRegex.FindAllString(text, -1); len(matches) >= 2 {
		return true
	}
	if dimensionCrossRegex.MatchString(text) {
		return true
	}
	return areaPhraseRegex.MatchString(text)
}

// ValidateResponse checks an LLM reply to a dimension question. When the
// reply fabricates measurements the sanitized replacement must be sent
// instead.
func ValidateResponse(response, question string, lookupSuccessful bool) (bool, string) {
	if !IsDimensionQuestion(question) {
		return true, ""
	}
	if lookupSuccessful {
		return true, ""
	}
	if ContainsFabricatedDimensions(response, lookupSuccessful) {
		return false, fabricatedDimensionReplacement
	}
	return true, ""
}
