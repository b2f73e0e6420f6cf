package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession groups the messages of one anonymous resident session.
type ChatSession struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	UnitId        *uuid.UUID
	StartedAt     time.Time
	LastActiveAt  time.Time
}
