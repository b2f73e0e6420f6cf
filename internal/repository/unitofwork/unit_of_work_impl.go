package unitofwork

import (
	"context"
	"fmt"

	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) DocChunkRepository() contract.DocChunkRepository {
	return implementation.NewDocChunkRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentSectionRepository() contract.DocumentSectionRepository {
	return implementation.NewDocumentSectionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DevelopmentRepository() contract.DevelopmentRepository {
	return implementation.NewDevelopmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProjectRepository() contract.ProjectRepository {
	return implementation.NewProjectRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UnitRoomDimensionRepository() contract.UnitRoomDimensionRepository {
	return implementation.NewUnitRoomDimensionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) IntelligenceProfileRepository() contract.IntelligenceProfileRepository {
	return implementation.NewIntelligenceProfileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) HouseTypeRepository() contract.HouseTypeRepository {
	return implementation.NewHouseTypeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DeveloperSettingRepository() contract.DeveloperSettingRepository {
	return implementation.NewDeveloperSettingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UnitRepository() contract.UnitRepository {
	return implementation.NewUnitRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatCitationRepository() contract.ChatCitationRepository {
	return implementation.NewChatCitationRepository(u.getDB())
}
