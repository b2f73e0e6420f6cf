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

type HouseTypeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HouseTypeMapper
}

func NewHouseTypeRepository(db *gorm.DB) contract.HouseTypeRepository {
	return &HouseTypeRepositoryImpl{
		db:     db,
		mapper: mapper.NewHouseTypeMapper(),
	}
}

func (r *HouseTypeRepositoryImpl) FindByCode(ctx context.Context, developmentId uuid.UUID, houseTypeCode string) (*entity.HouseType, error) {
	var m model.HouseType
	err := r.db.WithContext(ctx).
		Where("development_id = ?", developmentId).
		Where("house_type_code = ?", houseTypeCode).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
