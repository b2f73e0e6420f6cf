package service

import (
	"context"
	"encoding/json"
	"fmt"

	"property-assistant-be/internal/dto"
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/specification"
	"property-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDocumentService interface {
	// RequestIngest queues a document for chunking and embedding.
	RequestIngest(ctx context.Context, req *dto.IngestDocumentRequest) error
	ListByDevelopment(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.Document, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *documentService) RequestIngest(ctx context.Context, req *dto.IngestDocumentRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.DocumentId})
	if err != nil {
		return err
	}
	if document == nil {
		return fmt.Errorf("document %s not found", req.DocumentId)
	}

	msgPayload := dto.PublishIngestDocumentMessage{
		DocumentId: document.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return err
	}

	s.log.Info("document", "queued document for ingestion", map[string]interface{}{
		"document_id": document.Id.String(),
	})
	return nil
}

func (s *documentService) ListByDevelopment(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByDevelopment{DevelopmentId: developmentId},
	)
}
