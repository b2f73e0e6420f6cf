package enhanced

import (
	"context"
	"testing"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/internal/repository/specification"
	"property-assistant-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeEmbedder struct{}

func (fakeEmbedder) Generate(ctx context.Context, text string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{Values: []float32{1, 0}, Dimension: 2}, nil
}

type fakeChunkRepo struct {
	houseType   []*contract.ScoredDocChunk
	development []*contract.ScoredDocChunk
	tenant      []*contract.ScoredDocChunk

	developmentCalled bool
	tenantCalled      bool
}

func (f *fakeChunkRepo) Create(ctx context.Context, chunk *entity.DocChunk) error { return nil }
func (f *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocChunk) error {
	return nil
}
func (f *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}
func (f *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeChunkRepo) SearchUnitScoped(ctx context.Context, tenantId, developmentId uuid.UUID, unitId string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) SearchByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return f.houseType, nil
}
func (f *fakeChunkRepo) SearchImportantDocs(ctx context.Context, tenantId, developmentId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) SearchDevelopmentWide(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) SearchDevelopmentPreferHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	f.developmentCalled = true
	return f.development, nil
}
func (f *fakeChunkRepo) SearchTenantWide(ctx context.Context, tenantId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	f.tenantCalled = true
	return f.tenant, nil
}

type fakeSectionRepo struct {
	sections []*contract.ScoredDocumentSection
}

func (f *fakeSectionRepo) SearchByProject(ctx context.Context, projectId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocumentSection, error) {
	return f.sections, nil
}

type fakeDevelopmentRepo struct {
	development *entity.Development
}

func (f *fakeDevelopmentRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Development, error) {
	return f.development, nil
}

type fakeProjectRepo struct {
	project *entity.Project
}

func (f *fakeProjectRepo) FindByName(ctx context.Context, name string) (*entity.Project, error) {
	return f.project, nil
}

type fakeRoomRepo struct {
	byHouseType []*entity.UnitRoomDimension
	distinct    []*entity.UnitRoomDimension

	byHouseTypeCalled bool
	distinctCalled    bool
}

func (f *fakeRoomRepo) FindVerifiedUnitRoom(ctx context.Context, tenantId, unitId uuid.UUID, roomKey string) (*entity.UnitRoomDimension, error) {
	return nil, nil
}
func (f *fakeRoomRepo) FindVerifiedHouseTypeRoom(ctx context.Context, tenantId uuid.UUID, houseTypeCode, roomKey string) (*entity.UnitRoomDimension, error) {
	return nil, nil
}
func (f *fakeRoomRepo) FindUnverifiedRoom(ctx context.Context, tenantId uuid.UUID, houseTypeCode, roomKey string) (*entity.UnitRoomDimension, error) {
	return nil, nil
}
func (f *fakeRoomRepo) ListVerifiedUnitRooms(ctx context.Context, tenantId, unitId uuid.UUID) ([]*entity.UnitRoomDimension, error) {
	return nil, nil
}
func (f *fakeRoomRepo) ListVerifiedHouseTypeRooms(ctx context.Context, tenantId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error) {
	return nil, nil
}
func (f *fakeRoomRepo) ListUnverifiedRooms(ctx context.Context, tenantId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error) {
	return nil, nil
}
func (f *fakeRoomRepo) ListVisionRoomsByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string) ([]*entity.UnitRoomDimension, error) {
	f.byHouseTypeCalled = true
	return f.byHouseType, nil
}
func (f *fakeRoomRepo) ListVisionRoomsDistinct(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.UnitRoomDimension, error) {
	f.distinctCalled = true
	return f.distinct, nil
}

func scored(content string, similarity float64, docKind string) *contract.ScoredDocChunk {
	c := &entity.DocChunk{
		Id:      uuid.New(),
		Content: content,
	}
	if docKind != "" {
		c.DocKind = &docKind
	}
	return &contract.ScoredDocChunk{Chunk: c, Similarity: similarity}
}

func newTestRetriever(chunks *fakeChunkRepo, rooms *fakeRoomRepo) *Retriever {
	return NewRetriever(
		chunks,
		&fakeSectionRepo{},
		&fakeDevelopmentRepo{},
		&fakeProjectRepo{},
		rooms,
		fakeEmbedder{},
		nopLogger{},
	)
}

func TestDetectQuestionType(t *testing.T) {
	tests := []struct {
		question string
		expected QuestionType
	}{
		{"how big is the main bedroom", QuestionSpatial},
		{"what is the total floor area", QuestionSpatial},
		{"is my boiler covered by the warranty", QuestionWarranty},
		{"when does the homebond guarantee expire", QuestionWarranty},
		{"what brand of oven is installed", QuestionSpecification},
		{"who is the worktop supplier", QuestionSpecification},
		{"hello there", QuestionGeneral},
		// Spatial wins ties.
		{"warranty on the floor", QuestionSpatial},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectQuestionType(tt.question), "question: %s", tt.question)
	}
}

func TestDocKindBoost(t *testing.T) {
	floorplanSummary := "floorplan_summary"
	warranty := "warranty"
	unknown := "blueprint"

	assert.Equal(t, 1.5, docKindBoost(&floorplanSummary, QuestionSpatial))
	assert.Equal(t, 0.7, docKindBoost(&floorplanSummary, QuestionWarranty))
	assert.Equal(t, 1.5, docKindBoost(&warranty, QuestionWarranty))
	assert.Equal(t, 0.8, docKindBoost(&warranty, QuestionSpatial))
	assert.Equal(t, 1.0, docKindBoost(nil, QuestionSpatial))
	assert.Equal(t, 1.0, docKindBoost(&unknown, QuestionSpatial))
	assert.Equal(t, 1.0, docKindBoost(&warranty, QuestionGeneral))
}

func TestRetrieveStaysNarrowWhenHouseTypeSuffices(t *testing.T) {
	repo := &fakeChunkRepo{
		houseType: []*contract.ScoredDocChunk{
			scored("a", 0.8, ""),
			scored("b", 0.7, ""),
			scored("c", 0.6, ""),
		},
	}

	r := newTestRetriever(repo, &fakeRoomRepo{})
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "what finish are the internal doors",
	})
	require.NoError(t, err)

	assert.Equal(t, ScopeHouseType, result.ScopeUsed)
	assert.False(t, repo.developmentCalled)
	assert.False(t, repo.tenantCalled)
	assert.Len(t, result.Chunks, 3)
}

func TestRetrieveWidensScopeWhenSparse(t *testing.T) {
	repo := &fakeChunkRepo{
		houseType: []*contract.ScoredDocChunk{scored("narrow", 0.8, "")},
		development: []*contract.ScoredDocChunk{
			scored("wide one", 0.6, ""),
			scored("wide two", 0.55, ""),
		},
	}

	r := newTestRetriever(repo, &fakeRoomRepo{})
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "what finish are the internal doors",
	})
	require.NoError(t, err)

	assert.True(t, repo.developmentCalled)
	assert.False(t, repo.tenantCalled)
	assert.Equal(t, ScopeDevelopment, result.ScopeUsed)
	assert.Len(t, result.Chunks, 3)
}

func TestRetrieveFallsBackToTenantScope(t *testing.T) {
	repo := &fakeChunkRepo{
		tenant: []*contract.ScoredDocChunk{scored("tenant doc", 0.5, "")},
	}

	r := newTestRetriever(repo, &fakeRoomRepo{})
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "what finish are the internal doors",
	})
	require.NoError(t, err)

	assert.True(t, repo.tenantCalled)
	assert.Equal(t, ScopeTenant, result.ScopeUsed)
}

func TestRetrieveBoostsFloorplansForSpatialQuestions(t *testing.T) {
	repo := &fakeChunkRepo{
		houseType: []*contract.ScoredDocChunk{
			scored("warranty text", 0.7, "warranty"),
			scored("floorplan text", 0.7, "floorplan_summary"),
			scored("brochure text", 0.7, "brochure"),
		},
	}

	r := newTestRetriever(repo, &fakeRoomRepo{})
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "how big is the kitchen",
	})
	require.NoError(t, err)

	require.Len(t, result.Chunks, 3)
	assert.Equal(t, "floorplan_summary", result.Chunks[0].DocKind)
	assert.InDelta(t, 0.7*1.5, result.Chunks[0].BoostedScore, 1e-9)
	assert.Equal(t, "warranty", result.Chunks[2].DocKind)
}

func TestRetrieveFetchesFloorplanDataForSpatialQuestions(t *testing.T) {
	length, width, area := 4.2, 3.1, 13.02
	rooms := &fakeRoomRepo{
		byHouseType: []*entity.UnitRoomDimension{
			{RoomName: "Kitchen", RoomKey: "kitchen", LengthM: &length, WidthM: &width, AreaSqm: &area},
		},
	}
	repo := &fakeChunkRepo{
		houseType: []*contract.ScoredDocChunk{
			scored("a", 0.8, ""), scored("b", 0.7, ""), scored("c", 0.6, ""),
		},
	}

	r := newTestRetriever(repo, rooms)
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "how big is the kitchen",
	})
	require.NoError(t, err)

	assert.True(t, rooms.byHouseTypeCalled)
	assert.False(t, rooms.distinctCalled)
	require.Len(t, result.FloorplanData, 1)
	assert.Equal(t, "Kitchen", result.FloorplanData[0].RoomName)
}

func TestRetrieveSkipsFloorplanDataForGeneralQuestions(t *testing.T) {
	rooms := &fakeRoomRepo{}
	repo := &fakeChunkRepo{
		houseType: []*contract.ScoredDocChunk{
			scored("a", 0.8, ""), scored("b", 0.7, ""), scored("c", 0.6, ""),
		},
	}

	r := newTestRetriever(repo, rooms)
	result, err := r.Retrieve(context.Background(), Options{
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		HouseTypeCode: "TYPE_A",
		Query:         "hello, what can you tell me",
	})
	require.NoError(t, err)

	assert.False(t, rooms.byHouseTypeCalled)
	assert.False(t, rooms.distinctCalled)
	assert.Empty(t, result.FloorplanData)
}

func TestFormatFloorplanContext(t *testing.T) {
	ground := "Ground Floor"
	first := "First Floor"
	l1, w1, a1 := 4.0, 3.0, 12.0
	a2 := 8.5

	out := FormatFloorplanContext([]*FloorplanRoom{
		{RoomName: "Kitchen", FloorName: &ground, LengthM: &l1, WidthM: &w1, AreaSqm: &a1},
		{RoomName: "Bathroom", FloorName: &first, AreaSqm: &a2},
	})

	assert.Contains(t, out, "VERIFIED ROOM DIMENSIONS")
	assert.Contains(t, out, "Ground Floor:")
	assert.Contains(t, out, "Kitchen: 4m × 3m = 12m²")
	assert.Contains(t, out, "Bathroom: 8.5m²")
	assert.Contains(t, out, "Total floor area: approximately 20.5m²")
}

func TestFormatFloorplanContextEmpty(t *testing.T) {
	assert.Equal(t, "", FormatFloorplanContext(nil))
}
