package implementation

import (
	"context"
	"errors"

	"property-assistant-be/internal/mapper"
	"property-assistant-be/internal/model"
	"property-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeveloperSettingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DeveloperSettingMapper
}

func NewDeveloperSettingRepository(db *gorm.DB) contract.DeveloperSettingRepository {
	return &DeveloperSettingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDeveloperSettingMapper(),
	}
}

func (r *DeveloperSettingRepositoryImpl) FindValue(ctx context.Context, tenantId uuid.UUID, key string) (map[string]interface{}, error) {
	var m model.DeveloperSetting
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("key = ?", key).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m).Value, nil
}
