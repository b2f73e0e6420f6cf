package implementation

import (
	"context"
	"errors"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/mapper"
	"property-assistant-be/internal/model"
	"property-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntelligenceProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntelligenceProfileMapper
}

func NewIntelligenceProfileRepository(db *gorm.DB) contract.IntelligenceProfileRepository {
	return &IntelligenceProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntelligenceProfileMapper(),
	}
}

func (r *IntelligenceProfileRepositoryImpl) FindCurrentByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string) (*entity.UnitIntelligenceProfile, error) {
	var m model.UnitIntelligenceProfile
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("development_id = ?", developmentId).
		Where("house_type_code = ?", houseTypeCode).
		Where("is_current = true").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
