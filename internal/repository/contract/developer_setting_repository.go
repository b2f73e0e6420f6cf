package contract

import (
	"context"

	"github.com/google/uuid"
)

type DeveloperSettingRepository interface {
	// FindValue returns the JSON value for a tenant setting key, or
	// (nil, nil) when the tenant has no row for it.
	FindValue(ctx context.Context, tenantId uuid.UUID, key string) (map[string]interface{}, error)
}
