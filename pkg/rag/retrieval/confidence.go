package retrieval

// estimateConfidence averages the vector scores of the selected chunks and
// maps the mean onto the confidence categories.
func estimateConfidence(chunks []*ScoredChunk) (Confidence, float64) {
	if len(chunks) == 0 {
		return ConfidenceLow, 0
	}

	var sum float64
	for _, c := range chunks {
		sum += c.VectorScore
	}
	avg := sum / float64(len(chunks))

	switch {
	case avg >= confidenceHighThreshold:
		return ConfidenceHigh, avg
	case avg >= confidenceMediumThreshold:
		return ConfidenceMedium, avg
	default:
		return ConfidenceLow, avg
	}
}

type AnswerConfidence struct {
	Confidence                 string
	Explanation                string
	ShouldUseRelatedHouseTypes bool
}

// EstimateAnswerConfidence is the finer-grained variant used before answer
// generation: beyond raw similarity it requires scope-relevant tiers for
// the top categories.
func EstimateAnswerConfidence(chunks []*ScoredChunk) AnswerConfidence {
	if len(chunks) == 0 {
		return AnswerConfidence{
			Confidence:                 "no_match",
			Explanation:                "No relevant documents found",
			ShouldUseRelatedHouseTypes: true,
		}
	}

	topScore := chunks[0].VectorScore
	var sum float64
	hasUnitSpecific := false
	hasHouseType := false
	for _, c := range chunks {
		sum += c.VectorScore
		if c.Tier == TierUnit {
			hasUnitSpecific = true
		}
		if c.Tier == TierHouseType {
			hasHouseType = true
		}
	}
	avgScore := sum / float64(len(chunks))

	if topScore >= 0.85 && (hasUnitSpecific || hasHouseType) {
		return AnswerConfidence{
			Confidence:                 "exact",
			Explanation:                "High confidence match from unit or house type documents",
			ShouldUseRelatedHouseTypes: false,
		}
	}

	if topScore >= 0.7 || (avgScore >= 0.6 && hasHouseType) {
		return AnswerConfidence{
			Confidence:                 "probable",
			Explanation:                "Good match found, but verify with caution",
			ShouldUseRelatedHouseTypes: false,
		}
	}

	if avgScore >= 0.5 {
		return AnswerConfidence{
			Confidence:                 "uncertain",
			Explanation:                "Partial match found - answer may be approximate",
			ShouldUseRelatedHouseTypes: true,
		}
	}

	return AnswerConfidence{
		Confidence:                 "no_match",
		Explanation:                "No confident match found in documents",
		ShouldUseRelatedHouseTypes: true,
	}
}
