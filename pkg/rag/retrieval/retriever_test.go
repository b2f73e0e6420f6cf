package retrieval

import (
	"context"
	"math/rand"
	"testing"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/internal/repository/specification"
	"property-assistant-be/pkg/embedding"
	"property-assistant-be/pkg/rag/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeEmbedder struct{}

func (fakeEmbedder) Generate(ctx context.Context, text string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{Values: []float32{0.1, 0.2, 0.3}, Dimension: 3}, nil
}

type fakeChunkRepo struct {
	unit        []*contract.ScoredDocChunk
	houseType   []*contract.ScoredDocChunk
	important   []*contract.ScoredDocChunk
	development []*contract.ScoredDocChunk
	tenantWide  []*contract.ScoredDocChunk

	tenantWideCalled bool
}

func (f *fakeChunkRepo) Create(ctx context.Context, chunk *entity.DocChunk) error { return nil }
func (f *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocChunk) error {
	return nil
}
func (f *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}
func (f *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeChunkRepo) SearchUnitScoped(ctx context.Context, tenantId, developmentId uuid.UUID, unitId string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return f.unit, nil
}
func (f *fakeChunkRepo) SearchByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return f.houseType, nil
}
func (f *fakeChunkRepo) SearchImportantDocs(ctx context.Context, tenantId, developmentId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return f.important, nil
}
func (f *fakeChunkRepo) SearchDevelopmentWide(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return f.development, nil
}
func (f *fakeChunkRepo) SearchDevelopmentPreferHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) SearchTenantWide(ctx context.Context, tenantId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	f.tenantWideCalled = true
	return f.tenantWide, nil
}

type fakeSectionRepo struct {
	sections []*contract.ScoredDocumentSection
	called   bool
}

func (f *fakeSectionRepo) SearchByProject(ctx context.Context, projectId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocumentSection, error) {
	f.called = true
	return f.sections, nil
}

type fakeDevelopmentRepo struct {
	development *entity.Development
}

func (f *fakeDevelopmentRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Development, error) {
	return f.development, nil
}

type fakeProjectRepo struct {
	project *entity.Project
}

func (f *fakeProjectRepo) FindByName(ctx context.Context, name string) (*entity.Project, error) {
	return f.project, nil
}

func scored(id uuid.UUID, content string, similarity float64) *contract.ScoredDocChunk {
	return &contract.ScoredDocChunk{
		Chunk: &entity.DocChunk{
			Id:      id,
			Content: content,
		},
		Similarity: similarity,
	}
}

func newTestRetriever(chunks *fakeChunkRepo, sections *fakeSectionRepo, dev *fakeDevelopmentRepo, proj *fakeProjectRepo) *Retriever {
	if sections == nil {
		sections = &fakeSectionRepo{}
	}
	if dev == nil {
		dev = &fakeDevelopmentRepo{}
	}
	if proj == nil {
		proj = &fakeProjectRepo{}
	}
	return NewRetriever(chunks, sections, dev, proj, fakeEmbedder{}, nopLogger{})
}

func TestTierWeightOrdering(t *testing.T) {
	if !(TierWeights[TierUnit] >= TierWeights[TierHouseType] &&
		TierWeights[TierHouseType] >= TierWeights[TierImportant] &&
		TierWeights[TierImportant] >= TierWeights[TierDevelopment] &&
		TierWeights[TierDevelopment] >= TierWeights[TierGlobal]) {
		t.Fatalf("tier weights out of order: %v", TierWeights)
	}
}

func TestRetrieveDeduplicatesAcrossTiers(t *testing.T) {
	shared := uuid.New()
	chunks := &fakeChunkRepo{
		houseType: []*contract.ScoredDocChunk{
			scored(shared, "shared chunk", 0.9),
			scored(uuid.New(), "house type only", 0.85),
		},
		development: []*contract.ScoredDocChunk{
			scored(shared, "shared chunk", 0.9),
			scored(uuid.New(), "development only", 0.8),
			scored(uuid.New(), "development extra", 0.78),
			scored(uuid.New(), "development more", 0.76),
		},
	}

	r := newTestRetriever(chunks, nil, nil, nil)
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "kitchen worktop",
	})
	require.NoError(t, err)

	seen := map[uuid.UUID]int{}
	for _, c := range result.Chunks {
		seen[c.Id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "chunk %s appeared %d times", id, n)
	}

	// The higher tier wins the shared chunk.
	for _, c := range result.Chunks {
		if c.Id == shared {
			assert.Equal(t, TierHouseType, c.Tier)
		}
	}
	assert.Equal(t, 2, result.TierBreakdown["house_type"])
	assert.Equal(t, 3, result.TierBreakdown["development"])
}

func TestRetrieveSkipsGlobalWhenEnoughCandidates(t *testing.T) {
	dev := make([]*contract.ScoredDocChunk, 6)
	for i := range dev {
		dev[i] = scored(uuid.New(), "development chunk", 0.7)
	}
	chunks := &fakeChunkRepo{development: dev}

	r := newTestRetriever(chunks, nil, nil, nil)
	_, err := r.Retrieve(context.Background(), Options{
		TenantId:              uuid.New(),
		DevelopmentId:         uuid.New(),
		Query:                 "flooring",
		IncludeGlobalFallback: true,
	})
	require.NoError(t, err)
	assert.False(t, chunks.tenantWideCalled, "global tier must not run with enough candidates")
}

func TestRetrieveGlobalFallbackWhenSparse(t *testing.T) {
	chunks := &fakeChunkRepo{
		development: []*contract.ScoredDocChunk{scored(uuid.New(), "only one", 0.7)},
		tenantWide:  []*contract.ScoredDocChunk{scored(uuid.New(), "tenant wide", 0.65)},
	}

	r := newTestRetriever(chunks, nil, nil, nil)
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:              uuid.New(),
		DevelopmentId:         uuid.New(),
		Query:                 "flooring",
		IncludeGlobalFallback: true,
	})
	require.NoError(t, err)
	assert.True(t, chunks.tenantWideCalled)
	assert.Equal(t, 1, result.TierBreakdown["global"])
}

func TestRetrieveLegacySectionFallback(t *testing.T) {
	chunks := &fakeChunkRepo{}
	sections := &fakeSectionRepo{
		sections: []*contract.ScoredDocumentSection{
			{
				Section: &entity.DocumentSection{
					Id:        uuid.New(),
					ProjectId: uuid.New(),
					Content:   "legacy section content",
				},
				Similarity: 0.72,
			},
		},
	}
	dev := &fakeDevelopmentRepo{development: &entity.Development{Id: uuid.New(), Name: "Oak Park"}}
	proj := &fakeProjectRepo{project: &entity.Project{Id: uuid.New(), Name: "Oak Park"}}

	r := newTestRetriever(chunks, sections, dev, proj)
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		Query:         "site plan",
	})
	require.NoError(t, err)
	assert.True(t, sections.called)
	assert.Equal(t, 1, result.TierBreakdown["document_sections"])
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, TierDevelopment, result.Chunks[0].Tier)
	assert.Equal(t, TierWeights[TierDevelopment], result.Chunks[0].TierWeight)
	assert.Equal(t, "document_sections", result.Chunks[0].Metadata["source"])
}

func TestRetrieveConfidenceHighScenario(t *testing.T) {
	unit := []*contract.ScoredDocChunk{
		scored(uuid.New(), "a", 0.9),
		scored(uuid.New(), "b", 0.88),
		scored(uuid.New(), "c", 0.87),
		scored(uuid.New(), "d", 0.5),
		scored(uuid.New(), "e", 0.3),
	}
	chunks := &fakeChunkRepo{unit: unit}

	r := newTestRetriever(chunks, nil, nil, nil)
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		UnitId:        "unit-12",
		Query:         "zzz",
		Limit:         3,
	})
	require.NoError(t, err)
	require.Len(t, result.Chunks, 3)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
	assert.InDelta(t, (0.9+0.88+0.87)/3, result.ConfidenceScore, 1e-9)

	answer := EstimateAnswerConfidence(result.Chunks)
	assert.Equal(t, "exact", answer.Confidence)
	assert.False(t, answer.ShouldUseRelatedHouseTypes)
}

func TestEstimateAnswerConfidence(t *testing.T) {
	tests := []struct {
		name       string
		chunks     []*ScoredChunk
		confidence string
		related    bool
	}{
		{
			name:       "no chunks",
			chunks:     nil,
			confidence: "no_match",
			related:    true,
		},
		{
			name: "strong top without scoped tier is probable",
			chunks: []*ScoredChunk{
				{VectorScore: 0.9, Tier: TierDevelopment},
			},
			confidence: "probable",
			related:    false,
		},
		{
			name: "middling average is uncertain",
			chunks: []*ScoredChunk{
				{VectorScore: 0.55, Tier: TierDevelopment},
				{VectorScore: 0.5, Tier: TierGlobal},
			},
			confidence: "uncertain",
			related:    true,
		},
		{
			name: "weak everything is no_match",
			chunks: []*ScoredChunk{
				{VectorScore: 0.3, Tier: TierGlobal},
			},
			confidence: "no_match",
			related:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateAnswerConfidence(tt.chunks)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, tt.related, got.ShouldUseRelatedHouseTypes)
		})
	}
}

func TestFinalScoreMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	intent := query.Intent{}

	for i := 0; i < 200; i++ {
		low := rng.Float64() * 0.5
		high := low + rng.Float64()*0.5

		weak := scoreChunk(scored(uuid.New(), "nothing relevant", low), TierDevelopment, []string{"kitchen"}, intent)
		strong := scoreChunk(scored(uuid.New(), "kitchen kitchen details", high), TierDevelopment, []string{"kitchen"}, intent)

		if strong.FinalScore < weak.FinalScore {
			t.Fatalf("score not monotone: strong=%v weak=%v (vector %v vs %v)",
				strong.FinalScore, weak.FinalScore, high, low)
		}
	}
}

func TestFinalScoreTierWeightMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	intent := query.Intent{}
	tiers := []Tier{TierUnit, TierHouseType, TierImportant, TierDevelopment, TierGlobal}

	for i := 0; i < 100; i++ {
		similarity := rng.Float64()
		content := "kitchen worktop details"

		for j := 1; j < len(tiers); j++ {
			higher := scoreChunk(scored(uuid.New(), content, similarity), tiers[j-1], []string{"kitchen"}, intent)
			lower := scoreChunk(scored(uuid.New(), content, similarity), tiers[j], []string{"kitchen"}, intent)

			if higher.FinalScore < lower.FinalScore {
				t.Fatalf("same scores under %s scored below %s: %v < %v (vector %v)",
					tiers[j-1], tiers[j], higher.FinalScore, lower.FinalScore, similarity)
			}
		}
	}
}
