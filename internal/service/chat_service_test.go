package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"property-assistant-be/internal/dto"
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/internal/repository/specification"
	"property-assistant-be/internal/repository/unitofwork"
	"property-assistant-be/pkg/analytics"
	"property-assistant-be/pkg/embedding"
	"property-assistant-be/pkg/guardrail"
	"property-assistant-be/pkg/llm"
	"property-assistant-be/pkg/rag/retrieval"

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
	return &embedding.EmbeddingResponse{Values: []float32{0.1, 0.2, 0.3}, Dimension: 3}, nil
}

type fakeLLM struct {
	answer   string
	messages []llm.Message
	called   bool
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.called = true
	f.messages = history
	return f.answer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.answer, nil
}

type fakeAnalytics struct {
	questions  []analytics.Params
	fallbacks  []analytics.Params
	unanswered []analytics.Params
	errors     []analytics.Params
}

func (f *fakeAnalytics) PublishChatQuestion(ctx context.Context, params analytics.Params) {
	f.questions = append(f.questions, params)
}
func (f *fakeAnalytics) PublishChatFallback(ctx context.Context, params analytics.Params) {
	f.fallbacks = append(f.fallbacks, params)
}
func (f *fakeAnalytics) PublishUnanswered(ctx context.Context, params analytics.Params) {
	f.unanswered = append(f.unanswered, params)
}
func (f *fakeAnalytics) PublishError(ctx context.Context, params analytics.Params) {
	f.errors = append(f.errors, params)
}

type fakeUnitRepo struct {
	unit *entity.Unit
}

func (f *fakeUnitRepo) FindById(ctx context.Context, tenantId, id uuid.UUID) (*entity.Unit, error) {
	return f.unit, nil
}
func (f *fakeUnitRepo) FindAllByDevelopment(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.Unit, error) {
	return nil, nil
}

type fakeSessionRepo struct {
	session *entity.ChatSession
	created *entity.ChatSession
	touched bool
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	f.created = session
	return nil
}
func (f *fakeSessionRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	return f.session, nil
}
func (f *fakeSessionRepo) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.touched = true
	return nil
}

type fakeMessageRepo struct {
	created []*entity.ChatMessage
	count   int64
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	message.Id = uuid.New()
	f.created = append(f.created, message)
	return nil
}
func (f *fakeMessageRepo) FindAllBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	return nil, nil
}
func (f *fakeMessageRepo) CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	return f.count, nil
}

type fakeCitationRepo struct {
	created []*entity.ChatCitation
}

func (f *fakeCitationRepo) CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error {
	f.created = append(f.created, citations...)
	return nil
}
func (f *fakeCitationRepo) FindAllByMessageIds(ctx context.Context, messageIds []uuid.UUID) ([]*entity.ChatCitation, error) {
	return nil, nil
}

type fakeUow struct {
	units     *fakeUnitRepo
	sessions  *fakeSessionRepo
	messages  *fakeMessageRepo
	citations *fakeCitationRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) DocChunkRepository() contract.DocChunkRepository             { return nil }
func (f *fakeUow) DocumentRepository() contract.DocumentRepository             { return nil }
func (f *fakeUow) DocumentSectionRepository() contract.DocumentSectionRepository {
	return nil
}
func (f *fakeUow) DevelopmentRepository() contract.DevelopmentRepository { return nil }
func (f *fakeUow) ProjectRepository() contract.ProjectRepository         { return nil }
func (f *fakeUow) UnitRoomDimensionRepository() contract.UnitRoomDimensionRepository {
	return nil
}
func (f *fakeUow) IntelligenceProfileRepository() contract.IntelligenceProfileRepository {
	return nil
}
func (f *fakeUow) HouseTypeRepository() contract.HouseTypeRepository { return nil }
func (f *fakeUow) DeveloperSettingRepository() contract.DeveloperSettingRepository {
	return nil
}
func (f *fakeUow) UnitRepository() contract.UnitRepository               { return f.units }
func (f *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return f.sessions }
func (f *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return f.messages }
func (f *fakeUow) ChatCitationRepository() contract.ChatCitationRepository {
	return f.citations
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// Retrieval fakes.

type fakeChunkRepo struct {
	houseType   []*contract.ScoredDocChunk
	development []*contract.ScoredDocChunk
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
	return f.development, nil
}
func (f *fakeChunkRepo) SearchDevelopmentPreferHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepo) SearchTenantWide(ctx context.Context, tenantId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocChunk, error) {
	return nil, nil
}

type fakeSectionRepo struct{}

func (f *fakeSectionRepo) SearchByProject(ctx context.Context, projectId uuid.UUID, embedding []float32, maxDistance float64, limit int) ([]*contract.ScoredDocumentSection, error) {
	return nil, nil
}

type fakeDevelopmentRepo struct{}

func (f *fakeDevelopmentRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Development, error) {
	return nil, nil
}

type fakeProjectRepo struct{}

func (f *fakeProjectRepo) FindByName(ctx context.Context, name string) (*entity.Project, error) {
	return nil, nil
}

// Guardrail fakes.

type fakeRoomRepo struct {
	verifiedHouseType *entity.UnitRoomDimension
}

func (f *fakeRoomRepo) FindVerifiedUnitRoom(ctx context.Context, tenantId, unitId uuid.UUID, roomKey string) (*entity.UnitRoomDimension, error) {
	return nil, nil
}
func (f *fakeRoomRepo) FindVerifiedHouseTypeRoom(ctx context.Context, tenantId uuid.UUID, houseTypeCode, roomKey string) (*entity.UnitRoomDimension, error) {
	return f.verifiedHouseType, nil
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
	return nil, nil
}
func (f *fakeRoomRepo) ListVisionRoomsDistinct(ctx context.Context, tenantId, developmentId uuid.UUID) ([]*entity.UnitRoomDimension, error) {
	return nil, nil
}

type fakeProfileRepo struct{}

func (f *fakeProfileRepo) FindCurrentByHouseType(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string) (*entity.UnitIntelligenceProfile, error) {
	return nil, nil
}

type fakeHouseTypeRepo struct{}

func (f *fakeHouseTypeRepo) FindByCode(ctx context.Context, developmentId uuid.UUID, houseTypeCode string) (*entity.HouseType, error) {
	return nil, nil
}

type fakeSettingRepo struct{}

func (f *fakeSettingRepo) FindValue(ctx context.Context, tenantId uuid.UUID, key string) (map[string]interface{}, error) {
	return nil, nil
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }

type chatFixture struct {
	service   IChatService
	uow       *fakeUow
	llm       *fakeLLM
	analytics *fakeAnalytics
	chunks    *fakeChunkRepo
	rooms     *fakeRoomRepo
}

func newChatFixture(unit *entity.Unit) *chatFixture {
	uow := &fakeUow{
		units:     &fakeUnitRepo{unit: unit},
		sessions:  &fakeSessionRepo{},
		messages:  &fakeMessageRepo{},
		citations: &fakeCitationRepo{},
	}
	chunks := &fakeChunkRepo{}
	rooms := &fakeRoomRepo{}
	llmFake := &fakeLLM{answer: "According to the Kitchen Narrative, the worktops are quartz."}
	analyticsFake := &fakeAnalytics{}

	retriever := retrieval.NewRetriever(chunks, &fakeSectionRepo{}, &fakeDevelopmentRepo{}, &fakeProjectRepo{}, fakeEmbedder{}, nopLogger{})
	lookup := guardrail.NewLookup(rooms, &fakeProfileRepo{}, &fakeHouseTypeRepo{}, nopLogger{})
	settings := guardrail.NewSettingsProvider(&fakeSettingRepo{}, nopLogger{})
	guard := guardrail.NewGuardrail(lookup, settings, nopLogger{})

	svc := NewChatService(&fakeUowFactory{uow: uow}, retriever, guard, llmFake, analyticsFake, nopLogger{}, 8, true)
	return &chatFixture{
		service:   svc,
		uow:       uow,
		llm:       llmFake,
		analytics: analyticsFake,
		chunks:    chunks,
		rooms:     rooms,
	}
}

func testUnit() *entity.Unit {
	return &entity.Unit{
		Id:            uuid.New(),
		TenantId:      uuid.New(),
		DevelopmentId: uuid.New(),
		UnitNumber:    "12",
		AddressLine1:  "12 Oak Drive",
		HouseTypeCode: "TYPE_A",
		PurchaserName: sptr("Niamh"),
		Bedrooms:      iptr(3),
		Bathrooms:     iptr(2),
		FloorAreaM2:   fptr(110.5),
		SquareFootage: fptr(1189.0),
	}
}

func askRequest(unit *entity.Unit, message string) *dto.ChatAskRequest {
	unitId := unit.Id
	return &dto.ChatAskRequest{
		TenantId:      unit.TenantId,
		DevelopmentId: unit.DevelopmentId,
		UnitId:        &unitId,
		Message:       message,
	}
}

func TestAskDimensionQuestionInterceptedBeforeRetrieval(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)
	f.rooms.verifiedHouseType = &entity.UnitRoomDimension{
		Id:         uuid.New(),
		RoomName:   "kitchen",
		RoomKey:    "kitchen",
		LengthM:    fptr(4.2),
		WidthM:     fptr(3.1),
		AreaSqm:    fptr(13.02),
		Verified:   true,
		Confidence: 0.95,
	}

	res, err := f.service.Ask(context.Background(), askRequest(unit, "how big is the kitchen"))
	require.NoError(t, err)

	assert.Equal(t, SourceDimensionGuardrail, res.Source)
	assert.Contains(t, res.Answer, "4.2m × 3.1m")
	assert.False(t, f.llm.called, "grounded dimensions must not reach the LLM")

	require.Len(t, f.uow.messages.created, 1)
	logged := f.uow.messages.created[0]
	assert.Equal(t, "dimension", logged.Metadata["guardrail_type"])
	assert.Equal(t, "kitchen", logged.Metadata["room_key"])
	require.Len(t, f.analytics.questions, 1)
	assert.Empty(t, f.analytics.fallbacks)
}

func TestAskDimensionMissFallsBackAndPublishesEvent(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)

	res, err := f.service.Ask(context.Background(), askRequest(unit, "what size is the living room"))
	require.NoError(t, err)

	assert.Equal(t, SourceDimensionFallback, res.Source)
	assert.False(t, f.llm.called)
	require.Len(t, f.analytics.fallbacks, 1)
	assert.Equal(t, "dimension_lookup_miss", f.analytics.fallbacks[0].EventData["reason"])
}

func TestAskTotalAreaAnsweredFromUnitRow(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)

	res, err := f.service.Ask(context.Background(), askRequest(unit, "what is the total floor area of my home"))
	require.NoError(t, err)

	assert.Equal(t, SourceStructuredData, res.Source)
	assert.Contains(t, res.Answer, "110.5 m²")
	assert.Contains(t, res.Answer, "1189 square feet")
	assert.Contains(t, res.Answer, "3-bedroom, 2-bathroom")
	assert.False(t, f.llm.called, "structured data answers skip generation")
}

func TestAskRagPathBuildsCitationsAndLogsMessage(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)

	docId := uuid.New()
	title := "Kitchen & Wardrobe Narrative"
	f.chunks.houseType = []*contract.ScoredDocChunk{
		{
			Chunk: &entity.DocChunk{
				Id:            uuid.New(),
				DocumentId:    &docId,
				DocumentTitle: &title,
				Content:       "Worktops supplied by StoneCraft, installed 2024.",
			},
			Similarity: 0.88,
		},
		{
			Chunk: &entity.DocChunk{
				Id:            uuid.New(),
				DocumentId:    &docId,
				DocumentTitle: &title,
				Content:       "Wardrobes fitted by SlideRobes.",
			},
			Similarity: 0.82,
		},
	}

	res, err := f.service.Ask(context.Background(), askRequest(unit, "who supplied the kitchen worktops"))
	require.NoError(t, err)

	assert.Equal(t, SourceRag, res.Source)
	assert.Equal(t, 2, res.ChunksUsed)
	require.Len(t, res.Citations, 1, "citations deduplicate by document")
	assert.Equal(t, docId.String(), res.Citations[0].DocumentId)
	assert.Equal(t, title, res.Citations[0].DocumentTitle)

	require.Len(t, f.uow.messages.created, 1)
	logged := f.uow.messages.created[0]
	assert.Equal(t, "who supplied the kitchen worktops", logged.UserMessage)
	assert.Equal(t, res.Answer, logged.AiMessage)
	assert.Len(t, f.uow.citations.created, 2, "one citation row per cited chunk")

	require.Len(t, f.analytics.questions, 1)
	assert.Equal(t, SourceRag, f.analytics.questions[0].EventData["source"])
}

func TestAskRagPathInjectsHouseContext(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)
	f.chunks.houseType = []*contract.ScoredDocChunk{
		{
			Chunk:      &entity.DocChunk{Id: uuid.New(), Content: "TYPE_A finishes schedule."},
			Similarity: 0.8,
		},
	}

	_, err := f.service.Ask(context.Background(), askRequest(unit, "tell me about the finishes"))
	require.NoError(t, err)

	require.True(t, f.llm.called)
	require.Len(t, f.llm.messages, 3)
	assert.Contains(t, f.llm.messages[1].Content, "PURCHASER INFORMATION")
	assert.Contains(t, f.llm.messages[1].Content, "12 Oak Drive")
	assert.Contains(t, f.llm.messages[1].Content, "House Type: TYPE_A")
	assert.Contains(t, f.llm.messages[1].Content, "[Source 1: ")
}

func TestAskFirstChatAddsGreetingInstruction(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)
	f.chunks.houseType = []*contract.ScoredDocChunk{
		{
			Chunk:      &entity.DocChunk{Id: uuid.New(), Content: "Welcome pack contents."},
			Similarity: 0.8,
		},
	}

	sessionId := uuid.New()
	req := askRequest(unit, "tell me about my welcome pack")
	req.SessionId = &sessionId

	_, err := f.service.Ask(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, f.uow.sessions.created, "unknown session id creates a session row")
	assert.Equal(t, sessionId, f.uow.sessions.created.Id)

	require.True(t, f.llm.called)
	system := f.llm.messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "FIRST MESSAGE GREETING")
	assert.Contains(t, system.Content, "Niamh")
}

func TestAskReturningSessionSkipsGreeting(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)
	sessionId := uuid.New()
	f.uow.sessions.session = &entity.ChatSession{Id: sessionId, TenantId: unit.TenantId}
	f.uow.messages.count = 4
	f.chunks.houseType = []*contract.ScoredDocChunk{
		{
			Chunk:      &entity.DocChunk{Id: uuid.New(), Content: "Boiler manual excerpt."},
			Similarity: 0.8,
		},
	}

	req := askRequest(unit, "how do I reset the boiler")
	req.SessionId = &sessionId

	_, err := f.service.Ask(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, f.uow.sessions.touched)
	assert.NotContains(t, f.llm.messages[0].Content, "FIRST MESSAGE GREETING")
}

func TestAskNoChunksReturnsFallback(t *testing.T) {
	unit := testUnit()
	f := newChatFixture(unit)

	res, err := f.service.Ask(context.Background(), askRequest(unit, "can I keep chickens in the garden"))
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, res.Source)
	assert.True(t, res.SuggestFallback)
	assert.False(t, f.llm.called)
	require.Len(t, f.analytics.unanswered, 1)
	assert.Equal(t, "no_chunks", f.analytics.unanswered[0].EventData["reason"])
}

func TestBuildChunkContextLabelsTiers(t *testing.T) {
	docId := uuid.New()
	chunks := []*retrieval.ScoredChunk{
		{DocumentId: &docId, DocumentTitle: "Floor Plans", Tier: retrieval.TierUnit, Content: "unit content"},
		{DocumentTitle: "Site Guide", Tier: retrieval.TierDevelopment, Content: "site content"},
	}

	text := buildChunkContext(chunks)
	assert.Contains(t, text, "[Source 1: Floor Plans] [UNIT-SPECIFIC]")
	assert.Contains(t, text, "[Source 2: Site Guide]\n")
	assert.Equal(t, 2, strings.Count(text, "[Source"))
	assert.Contains(t, text, "\n\n---\n\n")
}
