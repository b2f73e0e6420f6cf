package hybrid

import (
	"context"
	"testing"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/internal/repository/specification"
	"property-assistant-be/pkg/embedding"

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
	return &embedding.EmbeddingResponse{Values: []float32{0.5, 0.5}, Dimension: 2}, nil
}

type fakeChunkRepo struct {
	stageA []*contract.ScoredDocChunk
	stageB []*contract.ScoredDocChunk

	stageBCalled bool
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
	return nil, nil
}
func (f *fakeChunkRepo) SearchByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) SearchImportantDocs(ctx context.Context, tenantId, developmentId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) SearchDevelopmentWide(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return f.stageA, nil
}
func (f *fakeChunkRepo) SearchDevelopmentPreferHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	f.stageBCalled = true
	return f.stageB, nil
}
func (f *fakeChunkRepo) SearchTenantWide(ctx context.Context, tenantId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}

func scored(content string, similarity float64, metadata map[string]interface{}) *contract.ScoredDocChunk {
	return &contract.ScoredDocChunk{
		Chunk: &entity.DocChunk{
			Id:       uuid.New(),
			Content:  content,
			Metadata: metadata,
		},
		Similarity: similarity,
	}
}

func TestIsSupplierQuery(t *testing.T) {
	tests := []struct {
		query    string
		expected bool
	}{
		{"who supplied the kitchen", true},
		{"who fitted my wardrobe", true},
		{"which contractor did the tiling", true},
		{"how big is the garden", false},
	}

	for _, tt := range tests {
		if got := isSupplierQuery(tt.query); got != tt.expected {
			t.Errorf("isSupplierQuery(%q) = %v, want %v", tt.query, got, tt.expected)
		}
	}
}

func TestRetrieveStageBOnlyWhenSparse(t *testing.T) {
	stageA := make([]*contract.ScoredDocChunk, 25)
	for i := range stageA {
		stageA[i] = scored("chunk", 0.6, nil)
	}
	repo := &fakeChunkRepo{stageA: stageA}

	r := NewRetriever(repo, fakeEmbedder{}, nopLogger{})
	_, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_B",
		Query:         "flooring details",
	})
	require.NoError(t, err)
	assert.False(t, repo.stageBCalled, "stage B must not run with enough stage A candidates")
}

func TestRetrieveImportantBoost(t *testing.T) {
	repo := &fakeChunkRepo{
		stageA: []*contract.ScoredDocChunk{
			scored("plain spec text", 0.8, nil),
			scored("plain spec text", 0.8, map[string]interface{}{"is_important": true}),
		},
	}

	r := NewRetriever(repo, fakeEmbedder{}, nopLogger{})
	chunks, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_B",
		Query:         "zzz zzz",
	})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.True(t, chunks[0].Metadata != nil, "boosted chunk should rank first")
	assert.InDelta(t, chunks[1].FinalScore*importantBoost, chunks[0].FinalScore, 1e-9)
}

func TestRetrieveDedupAcrossStages(t *testing.T) {
	shared := scored("shared", 0.75, nil)
	repo := &fakeChunkRepo{
		stageA: []*contract.ScoredDocChunk{shared},
		stageB: []*contract.ScoredDocChunk{shared, scored("extra", 0.7, nil)},
	}

	r := NewRetriever(repo, fakeEmbedder{}, nopLogger{})
	chunks, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_B",
		Query:         "anything here",
	})
	require.NoError(t, err)
	assert.True(t, repo.stageBCalled)
	require.Len(t, chunks, 2)
	assert.NotEqual(t, chunks[0].Id, chunks[1].Id)
}
