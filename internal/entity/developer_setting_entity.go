package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeveloperSetting is a per-tenant key/value configuration row with a JSON
// value, e.g. the "room_dimensions" guardrail settings.
type DeveloperSetting struct {
	Id        uuid.UUID
	TenantId  uuid.UUID
	Key       string
	Value     map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}
