package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation links an answer back to the document (and chunk) the
// evidence came from.
type ChatCitation struct {
	Id            uuid.UUID
	ChatMessageId uuid.UUID
	DocumentId    uuid.UUID
	ChunkId       *uuid.UUID
	Score         float64
	CreatedAt     time.Time
}
