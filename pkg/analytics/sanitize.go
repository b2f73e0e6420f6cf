package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Analytics rows must never carry purchaser PII. Keys matching these
// patterns are dropped before an event leaves the process.
var piiKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)email`),
	regexp.MustCompile(`(?i)name`),
	regexp.MustCompile(`(?i)address`),
	regexp.MustCompile(`(?i)phone`),
	regexp.MustCompile(`(?i)mobile`),
	regexp.MustCompile(`(?i)ip`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)auth`),
}

// SanitizeEventData strips PII from an event payload: keys matching the
// PII patterns, string values that look like email addresses, and the
// same recursively for nested maps.
func SanitizeEventData(data map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(data))

	for key, value := range data {
		if isPIIKey(key) {
			continue
		}
		if str, ok := value.(string); ok && strings.Contains(str, "@") {
			continue
		}
		if nested, ok := value.(map[string]interface{}); ok {
			sanitized[key] = SanitizeEventData(nested)
			continue
		}
		sanitized[key] = value
	}

	return sanitized
}

func isPIIKey(key string) bool {
	for _, pattern := range piiKeyPatterns {
		if pattern.MatchString(key) {
			return true
		}
	}
	return false
}

const sessionSaltPrefix = "oh-anon-2024-"

// HashSession anonymizes a raw session id with a daily-rotating salt.
// The truncated digest still groups events within a day but cannot be
// joined across days. Empty input yields empty output.
func HashSession(sessionId string, now time.Time) string {
	if sessionId == "" {
		return ""
	}
	salt := sessionSaltPrefix + now.UTC().Format("2006-01-02")
	sum := sha256.Sum256([]byte(sessionId + salt))
	return hex.EncodeToString(sum[:])[:16]
}
