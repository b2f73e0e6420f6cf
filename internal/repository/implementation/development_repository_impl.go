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

type DevelopmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DevelopmentMapper
}

func NewDevelopmentRepository(db *gorm.DB) contract.DevelopmentRepository {
	return &DevelopmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDevelopmentMapper(),
	}
}

func (r *DevelopmentRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Development, error) {
	var m model.Development
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DevelopmentMapper
}

func NewProjectRepository(db *gorm.DB) contract.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewDevelopmentMapper(),
	}
}

func (r *ProjectRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Project, error) {
	var m model.Project
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProjectToEntity(&m), nil
}
