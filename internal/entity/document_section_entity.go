package entity

import "github.com/google/uuid"

// DocumentSection is a chunk row in the legacy content system, queried only
// by the last-resort retrieval fallback.
type DocumentSection struct {
	Id        uuid.UUID
	ProjectId uuid.UUID
	Content   string
	Embedding []float32
}
