package unitofwork

import (
	"context"

	"property-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocChunkRepository() contract.DocChunkRepository
	DocumentRepository() contract.DocumentRepository
	DocumentSectionRepository() contract.DocumentSectionRepository
	DevelopmentRepository() contract.DevelopmentRepository
	ProjectRepository() contract.ProjectRepository
	UnitRoomDimensionRepository() contract.UnitRoomDimensionRepository
	IntelligenceProfileRepository() contract.IntelligenceProfileRepository
	HouseTypeRepository() contract.HouseTypeRepository
	DeveloperSettingRepository() contract.DeveloperSettingRepository
	UnitRepository() contract.UnitRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatCitationRepository() contract.ChatCitationRepository
}
