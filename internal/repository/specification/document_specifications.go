package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByTenant scopes a query to one tenant
type ByTenant struct {
	TenantId uuid.UUID
}

func (s ByTenant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_id = ?", s.TenantId)
}

// ByDevelopment scopes a query to one development
type ByDevelopment struct {
	DevelopmentId uuid.UUID
}

func (s ByDevelopment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("development_id = ?", s.DevelopmentId)
}

// ByDocument filters chunks belonging to a document
type ByDocument struct {
	DocumentId uuid.UUID
}

func (s ByDocument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// ByStatus filters documents by ingestion status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
