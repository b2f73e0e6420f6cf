package implementation

import (
	"context"
	"testing"

	"property-assistant-be/internal/mapper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB builds a session that renders SQL without touching a
// database, so query shape can be asserted in unit tests.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestSearchDevelopmentPreferHouseTypeEmitsOrderBy(t *testing.T) {
	r := &DocChunkRepositoryImpl{db: newDryRunDB(t), mapper: mapper.NewDocChunkMapper()}

	q := r.developmentPreferHouseTypeQuery(context.Background(), uuid.New(), uuid.New(), "TYPE_A", []float32{0.1, 0.2, 0.3}, 0.65, 50)

	var rows []scoredChunkRow
	stmt := q.Scan(&rows).Statement
	sql := stmt.SQL.String()

	require.Contains(t, sql, "ORDER BY", "house-type preference must reach the generated SQL")
	assert.Contains(t, sql, "CASE WHEN c.house_type_code =")
	assert.Contains(t, sql, "WHEN c.house_type_code IS NULL THEN 1 ELSE 2 END")
	assert.Contains(t, sql, "END, c.embedding <=>")
	assert.Contains(t, sql, "LIMIT")
}

func TestScoredSearchesOrderBySimilarity(t *testing.T) {
	r := &DocChunkRepositoryImpl{db: newDryRunDB(t), mapper: mapper.NewDocChunkMapper()}

	q, _ := r.scoredQuery(context.Background(), uuid.New(), []float32{0.1, 0.2, 0.3}, 0.75, 30)
	q = q.Where("c.development_id = ?", uuid.New()).
		Where("c.house_type_code = ?", "TYPE_A").
		Order("similarity DESC")

	var rows []scoredChunkRow
	stmt := q.Scan(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "1 - (c.embedding <=> ")
	assert.Contains(t, sql, "ORDER BY similarity DESC")
}
