package entity

import (
	"time"

	"github.com/google/uuid"
)

type Development struct {
	Id        uuid.UUID
	TenantId  uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Project is the legacy system's counterpart of a development. The two are
// correlated by name only, which is why the section fallback needs a lookup.
type Project struct {
	Id   uuid.UUID
	Name string
}
