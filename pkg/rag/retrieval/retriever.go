package retrieval

import (
	"context"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/pkg/embedding"
	"property-assistant-be/pkg/rag/query"

	"github.com/google/uuid"
)

// Per-tier cosine distance cutoffs and result caps. Distances loosen for
// the narrow tiers and tighten as scope widens, so broad tiers only
// contribute strong matches.
const (
	unitMaxDistance        = 0.8
	houseTypeMaxDistance   = 0.75
	importantMaxDistance   = 0.7
	developmentMaxDistance = 0.65
	globalMaxDistance      = 0.6
	sectionsMaxDistance    = 0.7

	unitTierLimit        = 20
	houseTypeTierLimit   = 30
	importantTierLimit   = 20
	developmentTierLimit = 25
	globalTierLimit      = 15
	sectionsTierLimit    = 20

	// Wider fallback tiers only run below this candidate count.
	minCandidatesBeforeFallback = 5

	defaultLimit = 10
)

// Retriever widens scope tier by tier until enough candidates are found,
// then ranks the union with the hybrid score.
type Retriever struct {
	chunks       contract.DocChunkRepository
	sections     contract.DocumentSectionRepository
	developments contract.DevelopmentRepository
	projects     contract.ProjectRepository
	embedder     embedding.Provider
	log          logger.ILogger
}

func NewRetriever(
	chunks contract.DocChunkRepository,
	sections contract.DocumentSectionRepository,
	developments contract.DevelopmentRepository,
	projects contract.ProjectRepository,
	embedder embedding.Provider,
	log logger.ILogger,
) *Retriever {
	return &Retriever{
		chunks:       chunks,
		sections:     sections,
		developments: developments,
		projects:     projects,
		embedder:     embedder,
		log:          log,
	}
}

// Retrieve runs the tier sequence for one query. Tier query failures are
// logged and the tier treated as empty; only an embedding failure aborts,
// since no tier can run without the query vector.
func (r *Retriever) Retrieve(ctx context.Context, opts Options) (*Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	emb, err := r.embedder.Generate(ctx, opts.Query)
	if err != nil {
		return nil, err
	}
	vec := emb.Values

	keywords := query.ExtractKeywords(opts.Query)
	intent := query.DetectIntent(opts.Query)

	var all []*ScoredChunk
	breakdown := map[string]int{}

	appendTier := func(tier Tier, rows []*contract.ScoredDocChunk, key string) {
		seen := make(map[uuid.UUID]struct{}, len(all))
		for _, c := range all {
			seen[c.Id] = struct{}{}
		}
		count := 0
		for _, row := range rows {
			if _, ok := seen[row.Chunk.Id]; ok {
				continue
			}
			all = append(all, scoreChunk(row, tier, keywords, intent))
			count++
		}
		breakdown[key] = count
	}

	if opts.UnitId != "" {
		rows, err := r.chunks.SearchUnitScoped(ctx, opts.TenantId, opts.DevelopmentId, opts.UnitId, vec, unitMaxDistance, unitTierLimit)
		if err != nil {
			r.logTierError("unit", err)
		} else {
			appendTier(TierUnit, rows, "unit")
		}
	}

	if opts.HouseTypeCode != "" {
		rows, err := r.chunks.SearchByHouseType(ctx, opts.TenantId, opts.DevelopmentId, opts.HouseTypeCode, vec, houseTypeMaxDistance, houseTypeTierLimit)
		if err != nil {
			r.logTierError("house_type", err)
		} else {
			appendTier(TierHouseType, rows, "house_type")
		}
	}

	rows, err := r.chunks.SearchImportantDocs(ctx, opts.TenantId, opts.DevelopmentId, vec, importantMaxDistance, importantTierLimit)
	if err != nil {
		r.logTierError("important", err)
	} else {
		appendTier(TierImportant, rows, "important")
	}

	rows, err = r.chunks.SearchDevelopmentWide(ctx, opts.TenantId, opts.DevelopmentId, opts.HouseTypeCode, vec, developmentMaxDistance, developmentTierLimit)
	if err != nil {
		r.logTierError("development", err)
	} else {
		appendTier(TierDevelopment, rows, "development")
	}

	if opts.IncludeGlobalFallback && len(all) < minCandidatesBeforeFallback {
		rows, err = r.chunks.SearchTenantWide(ctx, opts.TenantId, vec, globalMaxDistance, globalTierLimit)
		if err != nil {
			r.logTierError("global", err)
		} else {
			appendTier(TierGlobal, rows, "global")
		}
	}

	if len(all) < minCandidatesBeforeFallback {
		sectionRows, err := r.searchLegacySections(ctx, opts.DevelopmentId, vec)
		if err != nil {
			r.logTierError("document_sections", err)
			breakdown["document_sections"] = 0
		} else {
			appendTier(TierDevelopment, sectionRows, "document_sections")
		}
	}

	sortByFinalScore(all)
	top := all
	if len(top) > limit {
		top = top[:limit]
	}

	confidence, avgScore := estimateConfidence(top)
	suggestFallback := confidence == ConfidenceLow || len(top) < 3

	r.log.Info("retrieval", "tiered retrieval complete", map[string]interface{}{
		"candidates":       len(all),
		"selected":         len(top),
		"avg_vector_score": avgScore,
		"confidence":       string(confidence),
		"tier_breakdown":   breakdown,
		"suggest_fallback": suggestFallback,
	})

	return &Result{
		Chunks:          top,
		Confidence:      confidence,
		ConfidenceScore: avgScore,
		TierBreakdown:   breakdown,
		SuggestFallback: suggestFallback,
	}, nil
}

// searchLegacySections maps the development onto its legacy project by
// name and queries the legacy chunk table. Section hits join the ranking
// at development-tier weight.
func (r *Retriever) searchLegacySections(ctx context.Context, developmentId uuid.UUID, vec []float32) ([]*contract.ScoredDocChunk, error) {
	development, err := r.developments.FindById(ctx, developmentId)
	if err != nil {
		return nil, err
	}
	if development == nil {
		return nil, nil
	}

	project, err := r.projects.FindByName(ctx, development.Name)
	if err != nil {
		return nil, err
	}
	if project == nil {
		r.log.Warn("retrieval", "no legacy project for development", map[string]interface{}{
			"development": development.Name,
		})
		return nil, nil
	}

	sections, err := r.sections.SearchByProject(ctx, project.Id, vec, sectionsMaxDistance, sectionsTierLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]*contract.ScoredDocChunk, len(sections))
	for i, s := range sections {
		title := "Document Section"
		rows[i] = &contract.ScoredDocChunk{
			Chunk: &entity.DocChunk{
				Id:            s.Section.Id,
				Content:       s.Section.Content,
				DocumentTitle: &title,
				Metadata: map[string]interface{}{
					"source":     "document_sections",
					"project_id": s.Section.ProjectId.String(),
				},
			},
			Similarity: s.Similarity,
		}
	}
	return rows, nil
}

func (r *Retriever) logTierError(tier string, err error) {
	r.log.Error("retrieval", "tier query failed", map[string]interface{}{
		"tier":  tier,
		"error": err.Error(),
	})
}
