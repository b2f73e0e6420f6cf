package service

import (
	"context"

	"property-assistant-be/internal/dto"
	"property-assistant-be/pkg/rag/enhanced"
	"property-assistant-be/pkg/rag/hybrid"
)

// ISearchService exposes the flat retrieval strategies directly, without
// answer generation. Used by developer tooling and the portal's document
// search box.
type ISearchService interface {
	HybridSearch(ctx context.Context, req *dto.SearchRequest) (*dto.HybridSearchResponse, error)
	EnhancedSearch(ctx context.Context, req *dto.SearchRequest) (*dto.EnhancedSearchResponse, error)
}

type searchService struct {
	hybridRetriever   *hybrid.Retriever
	enhancedRetriever *enhanced.Retriever

	hybridLimit int
}

func NewSearchService(hybridRetriever *hybrid.Retriever, enhancedRetriever *enhanced.Retriever, hybridLimit int) ISearchService {
	return &searchService{
		hybridRetriever:   hybridRetriever,
		enhancedRetriever: enhancedRetriever,
		hybridLimit:       hybridLimit,
	}
}

func (s *searchService) HybridSearch(ctx context.Context, req *dto.SearchRequest) (*dto.HybridSearchResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.hybridLimit
	}

	chunks, err := s.hybridRetriever.Retrieve(ctx, hybrid.Options{
		TenantId:      req.TenantId,
		DevelopmentId: req.DevelopmentId,
		HouseTypeCode: req.HouseTypeCode,
		Query:         req.Query,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	res := &dto.HybridSearchResponse{
		Chunks: make([]dto.SearchChunkResponse, 0, len(chunks)),
	}
	for _, chunk := range chunks {
		item := dto.SearchChunkResponse{
			Id:            chunk.Id.String(),
			Content:       chunk.Content,
			DocumentTitle: chunk.DocumentTitle,
			VectorScore:   chunk.VectorScore,
			KeywordScore:  chunk.KeywordScore,
			FinalScore:    chunk.FinalScore,
			Metadata:      chunk.Metadata,
		}
		if chunk.DocumentId != nil {
			item.DocumentId = chunk.DocumentId.String()
		}
		res.Chunks = append(res.Chunks, item)
	}
	return res, nil
}

func (s *searchService) EnhancedSearch(ctx context.Context, req *dto.SearchRequest) (*dto.EnhancedSearchResponse, error) {
	result, err := s.enhancedRetriever.Retrieve(ctx, enhanced.Options{
		TenantId:      req.TenantId,
		DevelopmentId: req.DevelopmentId,
		HouseTypeCode: req.HouseTypeCode,
		Query:         req.Query,
		Limit:         req.Limit,
	})
	if err != nil {
		return nil, err
	}

	res := &dto.EnhancedSearchResponse{
		Chunks:       make([]dto.SearchChunkResponse, 0, len(result.Chunks)),
		QuestionType: string(result.QuestionType),
		ScopeUsed:    string(result.ScopeUsed),
		TotalChunks:  result.TotalChunks,
	}
	for _, chunk := range result.Chunks {
		item := dto.SearchChunkResponse{
			Id:            chunk.Id.String(),
			Content:       chunk.Content,
			DocumentTitle: chunk.DocumentTitle,
			DocKind:       chunk.DocKind,
			VectorScore:   chunk.Similarity,
			FinalScore:    chunk.BoostedScore,
			Metadata:      chunk.Metadata,
		}
		if chunk.DocumentId != nil {
			item.DocumentId = chunk.DocumentId.String()
		}
		res.Chunks = append(res.Chunks, item)
	}
	for _, room := range result.FloorplanData {
		res.FloorplanData = append(res.FloorplanData, dto.FloorplanRoomResponse{
			RoomName:   room.RoomName,
			RoomKey:    room.RoomKey,
			FloorName:  room.FloorName,
			LengthM:    room.LengthM,
			WidthM:     room.WidthM,
			AreaSqm:    room.AreaSqm,
			Confidence: room.Confidence,
		})
	}
	return res, nil
}
