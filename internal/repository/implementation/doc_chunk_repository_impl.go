package implementation

import (
	"context"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/mapper"
	"property-assistant-be/internal/model"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var privilegedDocumentTypes = []string{"specification", "floor_plan", "warranty", "manual"}

type DocChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocChunkMapper
}

func NewDocChunkRepository(db *gorm.DB) contract.DocChunkRepository {
	return &DocChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocChunkMapper(),
	}
}

func (r *DocChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.DocChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocChunk{}).Error
}

func (r *DocChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocChunk, error) {
	var models []*model.DocChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocChunk{}).Count(&count).Error
	return count, err
}

// scoredChunkRow carries the chunk columns plus the document join columns
// and the computed similarity from the raw select.
type scoredChunkRow struct {
	model.DocChunk
	DocumentTitle *string
	DocumentType  *string
	Similarity    float64
}

// scoredQuery builds the shared SELECT for all scoped searches: cosine
// similarity is 1 - (embedding <=> query), and maxDistance filters in
// distance space so each tier keeps its documented cutoff.
func (r *DocChunkRepositoryImpl) scoredQuery(ctx context.Context, tenantId uuid.UUID, embedding []float32, maxDistance float64, limit int) (*gorm.DB, pgvector.Vector) {
	vec := pgvector.NewVector(embedding)
	q := r.db.WithContext(ctx).
		Table("doc_chunks c").
		Select("c.*, d.title as document_title, d.document_type as document_type, 1 - (c.embedding <=> ?) as similarity", vec).
		Joins("LEFT JOIN documents d ON c.document_id = d.id").
		Where("c.tenant_id = ?", tenantId).
		Where("c.embedding IS NOT NULL").
		Where("(c.embedding <=> ?) < ?", vec, maxDistance).
		Limit(limit)
	return q, vec
}

func (r *DocChunkRepositoryImpl) collect(q *gorm.DB) ([]*contract.ScoredDocChunk, error) {
	var rows []scoredChunkRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocChunk, len(rows))
	for i, row := range rows {
		e := r.mapper.ToEntity(&row.DocChunk)
		e.DocumentTitle = row.DocumentTitle
		e.DocumentType = row.DocumentType
		scored[i] = &contract.ScoredDocChunk{
			Chunk:      e,
			Similarity: row.Similarity,
		}
	}
	return scored, nil
}

func (r *DocChunkRepositoryImpl) SearchUnitScoped(ctx context.Context, tenantId, developmentId uuid.UUID, unitId string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	q, _ := r.scoredQuery(ctx, tenantId, embedding, maxDistance, limit)
	q = q.Where("c.development_id = ?", developmentId).
		Where("(c.metadata->>'unit_id' = ? OR c.metadata->>'unit_uid' = ?)", unitId, unitId).
		Order("similarity DESC")
	return r.collect(q)
}

func (r *DocChunkRepositoryImpl) SearchByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	q, _ := r.scoredQuery(ctx, tenantId, embedding, maxDistance, limit)
	q = q.Where("c.development_id = ?", developmentId).
		Where("c.house_type_code = ?", houseTypeCode).
		Order("similarity DESC")
	return r.collect(q)
}

func (r *DocChunkRepositoryImpl) SearchImportantDocs(ctx context.Context, tenantId, developmentId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	q, _ := r.scoredQuery(ctx, tenantId, embedding, maxDistance, limit)
	q = q.Where("c.development_id = ?", developmentId).
		Where("(d.is_important = true OR c.metadata->>'is_important' = 'true' OR d.document_type IN ?)", privilegedDocumentTypes).
		Order("similarity DESC")
	return r.collect(q)
}

func (r *DocChunkRepositoryImpl) SearchDevelopmentWide(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	q, _ := r.scoredQuery(ctx, tenantId, embedding, maxDistance, limit)
	q = q.Where("c.development_id = ?", developmentId).
		Where("(c.house_type_code IS NULL OR c.house_type_code = ?)", houseTypeCode).
		Order("similarity DESC")
	return r.collect(q)
}

// developmentPreferHouseTypeQuery orders exact house-type matches first,
// untyped chunks second, other types last, nearest neighbours within each
// group. The CASE expression must go through clause.OrderBy: Order()
// accepts only strings and order clauses, anything else is dropped.
func (r *DocChunkRepositoryImpl) developmentPreferHouseTypeQuery(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) *gorm.DB {
	q, vec := r.scoredQuery(ctx, tenantId, embedding, maxDistance, limit)
	return q.Where("c.development_id = ?", developmentId).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:  "CASE WHEN c.house_type_code = ? THEN 0 WHEN c.house_type_code IS NULL THEN 1 ELSE 2 END, c.embedding <=> ?",
				Vars: []interface{}{houseTypeCode, vec},
			},
		})
}

func (r *DocChunkRepositoryImpl) SearchDevelopmentPreferHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return r.collect(r.developmentPreferHouseTypeQuery(ctx, tenantId, developmentId, houseTypeCode, embedding, maxDistance, limit))
}

func (r *DocChunkRepositoryImpl) SearchTenantWide(ctx context.Context, tenantId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	q, _ := r.scoredQuery(ctx, tenantId, embedding, maxDistance, limit)
	q = q.Order("similarity DESC")
	return r.collect(q)
}
