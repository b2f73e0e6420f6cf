package hybrid

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/pkg/embedding"

	"github.com/google/uuid"
)

// Flat two-stage variant of retrieval: a house-type-scoped pass, widened to
// the development only when stage A comes back thin. Scoring leans harder
// on the vector signal than the tiered retriever does.
const (
	stageAMaxDistance = 0.7
	stageALimit       = 40
	stageBMaxDistance = 0.7
	stageBLimit       = 50
	// Stage B runs only below this candidate count.
	stageBThreshold = 20

	defaultLimit         = 8
	defaultVectorWeight  = 0.7
	defaultKeywordWeight = 0.3
	importantBoost       = 1.2
)

var supplierKeywords = []string{
	"supplier", "installed", "contractor", "fitter", "provider",
	"manufacturer", "supplied", "installer", "fitted", "made",
}

var propertyKeywords = []string{
	"kitchen", "wardrobe", "boiler", "windows", "doors", "flooring",
	"bathroom", "bedroom", "living", "dining", "garage", "parking",
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {}, "all": {}, "can": {},
	"her": {}, "was": {}, "one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {}, "him": {},
	"his": {}, "how": {}, "man": {}, "new": {}, "now": {}, "old": {}, "see": {}, "two": {}, "way": {},
	"who": {}, "boy": {}, "did": {}, "its": {}, "let": {}, "put": {}, "say": {}, "she": {}, "too": {},
	"use": {},
}

var supplierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)who\s+(supplied|installed|fitted|provided|made|manufactured)`),
	regexp.MustCompile(`(?i)\b(supplier|installer|contractor|fitter|provider|manufacturer)\b`),
	regexp.MustCompile(`(?i)who\s+\w+\s+my\s+(kitchen|wardrobe|boiler|windows|doors)`),
}

var whitespacePattern = regexp.MustCompile(`\s+`)

type Chunk struct {
	Id            uuid.UUID
	Content       string
	DocumentId    *uuid.UUID
	DocumentTitle string
	VectorScore   float64
	KeywordScore  float64
	FinalScore    float64
	Metadata      map[string]interface{}
}

type Options struct {
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	UnitId        string
	HouseTypeCode string
	Query         string
	Limit         int
	VectorWeight  float64
	KeywordWeight float64
}

type Retriever struct {
	chunks   contract.DocChunkRepository
	embedder embedding.Provider
	log      logger.ILogger
}

func NewRetriever(chunks contract.DocChunkRepository, embedder embedding.Provider, log logger.ILogger) *Retriever {
	return &Retriever{
		chunks:   chunks,
		embedder: embedder,
		log:      log,
	}
}

func extractKeywords(q string) []string {
	tokens := whitespacePattern.Split(strings.TrimSpace(strings.ToLower(q)), -1)
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

func isSupplierQuery(q string) bool {
	normalized := strings.ToLower(q)
	for _, p := range supplierPatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}

func computeKeywordScore(content string, keywords []string, supplierQuery bool) float64 {
	if len(keywords) == 0 {
		return 0
	}
	contentLower := strings.ToLower(content)
	var score float64

	for _, kw := range keywords {
		if strings.Contains(contentLower, kw) {
			score += 0.3
		}
	}

	if supplierQuery {
		for _, kw := range supplierKeywords {
			if strings.Contains(contentLower, kw) {
				score += 0.5
			}
		}
	}

	for _, kw := range propertyKeywords {
		if strings.Contains(contentLower, kw) {
			score += 0.2
		}
	}

	normalized := score / float64(len(keywords))
	if normalized > 1 {
		return 1
	}
	return normalized
}

func (r *Retriever) Retrieve(ctx context.Context, opts Options) ([]*Chunk, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	vectorWeight := opts.VectorWeight
	keywordWeight := opts.KeywordWeight
	if vectorWeight == 0 && keywordWeight == 0 {
		vectorWeight = defaultVectorWeight
		keywordWeight = defaultKeywordWeight
	}

	emb, err := r.embedder.Generate(ctx, opts.Query)
	if err != nil {
		return nil, err
	}
	vec := emb.Values

	keywords := extractKeywords(opts.Query)
	supplierQuery := isSupplierQuery(opts.Query)

	r.log.Info("hybrid", "query analysis", map[string]interface{}{
		"keywords":          keywords,
		"is_supplier_query": supplierQuery,
	})

	var candidates []*contract.ScoredDocChunk

	if opts.HouseTypeCode != "" {
		candidates, err = r.chunks.SearchDevelopmentWide(ctx, opts.TenantId, opts.DevelopmentId, opts.HouseTypeCode, vec, stageAMaxDistance, stageALimit)
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) < stageBThreshold {
		devRows, err := r.chunks.SearchDevelopmentPreferHouseType(ctx, opts.TenantId, opts.DevelopmentId, opts.HouseTypeCode, vec, stageBMaxDistance, stageBLimit)
		if err != nil {
			return nil, err
		}

		seen := make(map[uuid.UUID]struct{}, len(candidates))
		for _, c := range candidates {
			seen[c.Chunk.Id] = struct{}{}
		}
		for _, row := range devRows {
			if _, ok := seen[row.Chunk.Id]; ok {
				continue
			}
			candidates = append(candidates, row)
		}
	}

	scored := make([]*Chunk, len(candidates))
	for i, candidate := range candidates {
		vectorScore := candidate.Similarity
		if vectorScore < 0 {
			vectorScore = 0
		}
		keywordScore := computeKeywordScore(candidate.Chunk.Content, keywords, supplierQuery)

		finalScore := vectorWeight*vectorScore + keywordWeight*keywordScore
		if candidate.Chunk.IsImportant() {
			finalScore *= importantBoost
		}

		title := ""
		if candidate.Chunk.DocumentTitle != nil {
			title = *candidate.Chunk.DocumentTitle
		}

		scored[i] = &Chunk{
			Id:            candidate.Chunk.Id,
			Content:       candidate.Chunk.Content,
			DocumentId:    candidate.Chunk.DocumentId,
			DocumentTitle: title,
			VectorScore:   vectorScore,
			KeywordScore:  keywordScore,
			FinalScore:    finalScore,
			Metadata:      candidate.Chunk.Metadata,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}
