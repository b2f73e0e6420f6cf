package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DeveloperSetting struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:unique_tenant_setting_key,priority:1"`
	Key       string            `gorm:"type:text;not null;uniqueIndex:unique_tenant_setting_key,priority:2"`
	Value     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt *time.Time        `gorm:"autoUpdateTime"`
}

func (DeveloperSetting) TableName() string {
	return "developer_settings"
}
