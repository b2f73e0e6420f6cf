package query

import (
	"regexp"
	"strings"
)

// Keyword tables driving intent detection and keyword scoring. Supplier
// terms answer "who fitted X", property terms cover the fixtures buyers ask
// about, dimension terms cover room-size questions.

var supplierKeywords = []string{
	"supplier", "installed", "contractor", "fitter", "provider",
	"manufacturer", "supplied", "installer", "fitted", "made", "company",
}

var propertyKeywords = []string{
	"kitchen", "wardrobe", "boiler", "windows", "doors", "flooring",
	"bathroom", "bedroom", "living", "dining", "garage", "parking",
	"heating", "plumbing", "electrical", "tiles", "countertop",
}

var dimensionKeywords = []string{
	"size", "dimension", "area", "square", "sqm", "m²", "metres", "meters",
	"length", "width", "height", "floor area", "room size",
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {}, "all": {}, "can": {}, "her": {},
	"was": {}, "one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {}, "him": {}, "his": {}, "how": {},
	"man": {}, "new": {}, "now": {}, "old": {}, "see": {}, "two": {}, "way": {}, "who": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "with": {}, "would": {}, "your": {}, "about": {}, "could": {},
	"have": {}, "this": {}, "will": {}, "from": {}, "they": {}, "been": {}, "more": {}, "some": {}, "than": {},
	"into": {}, "only": {}, "over": {}, "such": {}, "make": {}, "like": {}, "just": {}, "know": {},
}

var (
	whoSuppliedPattern = regexp.MustCompile(`(?i)who\s+(supplied|installed|fitted|provided|made|manufactured)`)
	howBigPattern      = regexp.MustCompile(`(?i)how\s+(big|large|small)`)
	crossPattern       = regexp.MustCompile(`\d+(?:\.\d+)?\s*m?\s*[xX×]\s*\d+(?:\.\d+)?\s*m?`)
	sqmSymbolPattern   = regexp.MustCompile(`\d+(?:\.\d+)?\s*m²`)
	sqmWordPattern     = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*sqm`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Intent classifies what a purchaser question is after, derived from
// keyword tables plus a few phrase patterns.
type Intent struct {
	IsSupplierQuery  bool
	IsDimensionQuery bool
	IsPropertyQuery  bool
}

// ExtractKeywords lowercases the query, splits on whitespace, and keeps
// tokens longer than 2 characters that are not stopwords.
func ExtractKeywords(q string) []string {
	normalized := strings.ToLower(q)
	tokens := whitespacePattern.Split(strings.TrimSpace(normalized), -1)

	keywords := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) <= 2 {
			continue
		}
		if _, ok := stopwords[t]; ok {
			continue
		}
		keywords = append(keywords, t)
	}
	return keywords
}

func DetectIntent(q string) Intent {
	normalized := strings.ToLower(q)

	return Intent{
		IsSupplierQuery:  containsAny(normalized, supplierKeywords) || whoSuppliedPattern.MatchString(normalized),
		IsDimensionQuery: containsAny(normalized, dimensionKeywords) || howBigPattern.MatchString(normalized),
		IsPropertyQuery:  containsAny(normalized, propertyKeywords),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// KeywordScore rates content against extracted keywords and intent,
// normalized to [0,1] by the maximum score achievable for this keyword and
// intent mix. Repeated keyword occurrences earn a diminishing bonus of
// +0.2 each, capped at +0.6.
func KeywordScore(content string, keywords []string, intent Intent) float64 {
	contentLower := strings.ToLower(content)
	var score, maxScore float64

	for _, keyword := range keywords {
		maxScore += 1
		if !strings.Contains(contentLower, keyword) {
			continue
		}
		score += 1

		wordPattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
		if err != nil {
			continue
		}
		if matches := wordPattern.FindAllStringIndex(contentLower, -1); len(matches) > 1 {
			extra := len(matches) - 1
			if extra > 3 {
				extra = 3
			}
			score += 0.2 * float64(extra)
		}
	}

	if intent.IsSupplierQuery {
		for _, kw := range supplierKeywords {
			if strings.Contains(contentLower, kw) {
				score += 0.5
				maxScore += 0.5
			}
		}
	}

	if intent.IsDimensionQuery {
		if crossPattern.MatchString(content) {
			score += 1
		}
		if sqmSymbolPattern.MatchString(content) || sqmWordPattern.MatchString(content) {
			score += 0.5
		}
		maxScore += 1.5
	}

	if intent.IsPropertyQuery {
		for _, kw := range propertyKeywords {
			if strings.Contains(contentLower, kw) {
				score += 0.3
				maxScore += 0.3
			}
		}
	}

	if maxScore == 0 {
		return 0
	}
	normalized := score / maxScore
	if normalized > 1 {
		return 1
	}
	return normalized
}
