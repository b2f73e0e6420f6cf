package service

import (
	"context"
	"fmt"
	"testing"

	"property-assistant-be/internal/dto"
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/pkg/rag/enhanced"
	"property-assistant-be/pkg/rag/hybrid"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture(chunks *fakeChunkRepo, hybridLimit int) ISearchService {
	hybridRetriever := hybrid.NewRetriever(chunks, fakeEmbedder{}, nopLogger{})
	enhancedRetriever := enhanced.NewRetriever(chunks, &fakeSectionRepo{}, &fakeDevelopmentRepo{}, &fakeProjectRepo{}, &fakeRoomRepo{}, fakeEmbedder{}, nopLogger{})
	return NewSearchService(hybridRetriever, enhancedRetriever, hybridLimit)
}

func developmentChunks(n int) []*contract.ScoredDocChunk {
	rows := make([]*contract.ScoredDocChunk, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &contract.ScoredDocChunk{
			Chunk: &entity.DocChunk{
				Id:      uuid.New(),
				Content: fmt.Sprintf("kitchen worktop specification, section %d", i),
			},
			Similarity: 0.9 - float64(i)*0.01,
		})
	}
	return rows
}

func TestHybridSearchFallsBackToConfiguredLimit(t *testing.T) {
	svc := newSearchFixture(&fakeChunkRepo{development: developmentChunks(10)}, 4)

	res, err := svc.HybridSearch(context.Background(), &dto.SearchRequest{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "kitchen worktop",
	})

	require.NoError(t, err)
	assert.Len(t, res.Chunks, 4)
}

func TestHybridSearchHonoursRequestLimit(t *testing.T) {
	svc := newSearchFixture(&fakeChunkRepo{development: developmentChunks(10)}, 4)

	res, err := svc.HybridSearch(context.Background(), &dto.SearchRequest{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "kitchen worktop",
		Limit:         2,
	})

	require.NoError(t, err)
	assert.Len(t, res.Chunks, 2)
}
