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

const visionSource = "vision_floorplan"

type UnitRoomDimensionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoomDimensionMapper
}

func NewUnitRoomDimensionRepository(db *gorm.DB) contract.UnitRoomDimensionRepository {
	return &UnitRoomDimensionRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoomDimensionMapper(),
	}
}

func (r *UnitRoomDimensionRepositoryImpl) firstRow(q *gorm.DB) (*entity.UnitRoomDimension, error) {
	var m model.UnitRoomDimension
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UnitRoomDimensionRepositoryImpl) allRows(q *gorm.DB) ([]*entity.UnitRoomDimension, error) {
	var models []*model.UnitRoomDimension
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UnitRoomDimensionRepositoryImpl) FindVerifiedUnitRoom(ctx context.Context, tenantId, unitId uuid.UUID, roomKey string) (*entity.UnitRoomDimension, error) {
	return r.firstRow(r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("unit_id = ?", unitId).
		Where("room_key = ?", roomKey).
		Where("verified = true").
		Order("confidence DESC, updated_at DESC"))
}

func (r *UnitRoomDimensionRepositoryImpl) FindVerifiedHouseTypeRoom(ctx context.Context, tenantId uuid.UUID, houseTypeCode, roomKey string) (*entity.UnitRoomDimension, error) {
	return r.firstRow(r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("unit_type_code = ?", houseTypeCode).
		Where("room_key = ?", roomKey).
		Where("verified = true").
		Where("unit_id IS NULL").
		Order("confidence DESC, updated_at DESC"))
}

func (r *UnitRoomDimensionRepositoryImpl) FindUnverifiedRoom(ctx context.Context, tenantId uuid.UUID, houseTypeCode, roomKey string) (*entity.UnitRoomDimension, error) {
	return r.firstRow(r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("unit_type_code = ?", houseTypeCode).
		Where("room_key = ?", roomKey).
		Where("verified = false").
		Order("confidence DESC, updated_at DESC"))
}

func (r *UnitRoomDimensionRepositoryImpl) ListVerifiedUnitRooms(ctx context.Context, tenantId, unitId uuid.UUID) ([]*entity.UnitRoomDimension, error) {
	return r.allRows(r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("unit_id = ?", unitId).
		Where("verified = true").
		Order("confidence DESC"))
}

func (r *UnitRoomDimensionRepositoryImpl) ListVerifiedHouseTypeRooms(ctx context.Context, tenantId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error) {
	return r.allRows(r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("unit_type_code = ?", houseTypeCode).
		Where("verified = true").
		Where("unit_id IS NULL").
		Order("confidence DESC"))
}

func (r *UnitRoomDimensionRepositoryImpl) ListUnverifiedRooms(ctx context.Context, tenantId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error) {
	return r.allRows(r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("unit_type_code = ?", houseTypeCode).
		Where("verified = false").
		Order("confidence DESC"))
}

func (r *UnitRoomDimensionRepositoryImpl) ListVisionRoomsByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error) {
	return r.allRows(r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantId).
		Where("development_id = ?", developmentId).
		Where("unit_type_code = ?", houseTypeCode).
		Where("source = ?", visionSource).
		Order("floor, room_name"))
}

func (r *UnitRoomDimensionRepositoryImpl) ListVisionRoomsDistinct(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.UnitRoomDimension, error) {
	// Best-confidence row per room key across the development.
	var models []*model.UnitRoomDimension
	err := r.db.WithContext(ctx).
		Select("DISTINCT ON (room_key) *").
		Where("tenant_id = ?", tenantId).
		Where("development_id = ?", developmentId).
		Where("source = ?", visionSource).
		Order("room_key, confidence DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
