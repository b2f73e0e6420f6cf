package retrieval

import (
	"sort"

	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/pkg/rag/query"
)

// Hybrid score split between semantic and lexical signal. The tier weight
// multiplies the blend, which caps how far a weaker-tier chunk can climb.
const (
	vectorWeight  = 0.6
	keywordWeight = 0.4
)

func scoreChunk(sc *contract.ScoredDocChunk, tier Tier, keywords []string, intent query.Intent) *ScoredChunk {
	vectorScore := sc.Similarity
	if vectorScore < 0 {
		vectorScore = 0
	}
	keywordScore := query.KeywordScore(sc.Chunk.Content, keywords, intent)
	tierWeight := TierWeights[tier]

	title := ""
	if sc.Chunk.DocumentTitle != nil {
		title = *sc.Chunk.DocumentTitle
	}

	return &ScoredChunk{
		Id:            sc.Chunk.Id,
		Content:       sc.Chunk.Content,
		DocumentId:    sc.Chunk.DocumentId,
		DocumentTitle: title,
		HouseTypeCode: sc.Chunk.HouseTypeCode,
		UnitId:        sc.Chunk.UnitId(),
		VectorScore:   vectorScore,
		KeywordScore:  keywordScore,
		TierWeight:    tierWeight,
		FinalScore:    tierWeight * (vectorWeight*vectorScore + keywordWeight*keywordScore),
		Metadata:      sc.Chunk.Metadata,
		Tier:          tier,
	}
}

func sortByFinalScore(chunks []*ScoredChunk) {
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].FinalScore > chunks[j].FinalScore
	})
}
