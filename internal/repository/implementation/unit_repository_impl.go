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

type UnitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UnitMapper
}

func NewUnitRepository(db *gorm.DB) contract.UnitRepository {
	return &UnitRepositoryImpl{
		db:     db,
		mapper: mapper.NewUnitMapper(),
	}
}

func (r *UnitRepositoryImpl) FindById(ctx context.Context, tenantId, id uuid.UUID) (*entity.Unit, error) {
	var m model.Unit
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UnitRepositoryImpl) FindAllByDevelopment(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.Unit, error) {
	var models []*model.Unit
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("development_id = ?", developmentId).
		Order("unit_number asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
