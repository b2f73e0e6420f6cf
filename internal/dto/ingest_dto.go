package dto

import "github.com/google/uuid"

// PublishIngestDocumentMessage is the queue payload asking the worker to
// (re)chunk and embed one document.
type PublishIngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type IngestDocumentRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
}
