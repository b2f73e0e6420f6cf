package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"property-assistant-be/internal/dto"
	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/unitofwork"
	"property-assistant-be/pkg/analytics"
	"property-assistant-be/pkg/guardrail"
	"property-assistant-be/pkg/llm"
	"property-assistant-be/pkg/rag/retrieval"

	"github.com/google/uuid"
)

// Answer sources recorded on every logged message.
const (
	SourceRag                = "rag"
	SourceFallback           = "fallback"
	SourceStructuredData     = "structured_data"
	SourceDimensionGuardrail = "dimension_guardrail"
	SourceDimensionFallback  = "dimension_fallback"
)

const noDataFallbackAnswer = "I don't have specific information about that in the documents for your home. " +
	"Would you like me to check with your developer for more details?"

const residentSystemPrompt = `You are the OpenHouse Resident Assistant.
You have access to context snippets extracted from documents linked to the user's home and development.

IMPORTANT - BEST EFFORT ANSWERING:
1. If there is ANY plausible evidence in the context addressing the question, you MUST attempt a best-effort answer
2. Each context snippet is labeled with its source document (e.g., [Source 1: Kitchen Narrative])
3. Always cite the source document when providing information (e.g., "According to the Kitchen & Wardrobe Narrative...")
4. If evidence is partial or indirect, clearly state that you are inferring based on the available documents
5. ONLY say you cannot find information when NOTHING in the context is relevant at all

When answering questions about suppliers, contractors, or installers:
- Look for company names, supplier information, manufacturer details in the context
- Pay attention to phrases like "supplied by", "installed by", "provided by", "manufacturer"
- If you find this information, provide it with confidence and cite the source document

When answering questions about the purchaser's home:
1. You ALREADY KNOW their house type from the PURCHASER INFORMATION section
2. NEVER ask them what house type they have - this information is provided to you
3. Automatically use their house type information from the CONTEXT to answer their questions
4. Be helpful and specific - if they ask "What size is my living room?", immediately answer using their house type's living room dimensions

IMPORTANT RULES FOR ROOM SIZE QUESTIONS:
When a user asks about room sizes, dimensions, or floor area:
- First, carefully read the retrieved context for ALL linear measurements in metres (e.g., "3.8 m" and "6.3 m")
- Where two dimensions are clearly present for the same room, treat them as width and length
- ALWAYS answer with BOTH dimensions (e.g., "3.8 m by 6.3 m") AND the calculated floor area in m² (e.g., "24.0 m²")
- Make it clear you are using values from the uploaded plans or documents
- If you can only see ONE dimension, say so explicitly and do NOT pretend to know the second dimension or area
- NEVER answer with just a single number like "6.3 m" as the "size" of a room - this is incomplete
- Example answer format: "Your living room is approximately 3.8 m by 6.3 m, which gives a floor area of about 24.0 m². These dimensions are from your uploaded floor plans."

ONLY if the answer is truly not in the context at all, say:
"Based on the documents available for your home, I don't see any information about that. Would you like me to check with your developer?"`

var (
	totalAreaQueryRegex    = regexp.MustCompile(`total\s+(floor\s+)?area|overall\s+size|house\s+size|home\s+size|how\s+big\s+is\s+(the\s+)?(house|home|property)|square\s+(feet|footage|meters?|metres?)`)
	specificRoomQueryRegex = regexp.MustCompile(`living\s+room|bedroom|bathroom|kitchen|dining|garage|hall|utility`)
)

type IChatService interface {
	Ask(ctx context.Context, req *dto.ChatAskRequest) (*dto.ChatAskResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	retriever  *retrieval.Retriever
	guard      *guardrail.Guardrail
	llm        llm.LLMProvider
	analytics  analytics.Publisher
	log        logger.ILogger

	retrievalLimit int
	globalFallback bool
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	retriever *retrieval.Retriever,
	guard *guardrail.Guardrail,
	llmProvider llm.LLMProvider,
	analyticsPublisher analytics.Publisher,
	log logger.ILogger,
	retrievalLimit int,
	globalFallback bool,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		retriever:      retriever,
		guard:          guard,
		llm:            llmProvider,
		analytics:      analyticsPublisher,
		log:            log,
		retrievalLimit: retrievalLimit,
		globalFallback: globalFallback,
	}
}

func (s *chatService) Ask(ctx context.Context, req *dto.ChatAskRequest) (*dto.ChatAskResponse, error) {
	start := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var unit *entity.Unit
	if req.UnitId != nil {
		found, err := uow.UnitRepository().FindById(ctx, req.TenantId, *req.UnitId)
		if err != nil {
			s.log.Warn("chat", "failed to load unit details", map[string]interface{}{
				"unit_id": req.UnitId.String(),
				"error":   err.Error(),
			})
		} else {
			unit = found
		}
	}

	houseTypeCode := ""
	address := ""
	if unit != nil {
		houseTypeCode = unit.HouseTypeCode
		address = unit.AddressLine1
	}

	isFirstChat := s.ensureSession(ctx, uow, req)

	// Dimension questions are answered from stored measurements only,
	// before any retrieval runs.
	guardResult, err := s.guard.Apply(ctx, req.Message, req.TenantId, req.DevelopmentId, houseTypeCode, address, req.UnitId)
	if err != nil {
		s.log.Error("chat", "dimension guardrail failed", map[string]interface{}{"error": err.Error()})
	} else if guardResult.ShouldIntercept {
		source := SourceDimensionFallback
		if guardResult.LookupSuccessful {
			source = SourceDimensionGuardrail
		}
		res := &dto.ChatAskResponse{
			Answer:           guardResult.GroundedAnswer,
			Source:           source,
			ChunksUsed:       0,
			SuggestFloorplan: guardResult.SuggestFloorplan,
			LatencyMs:        time.Since(start).Milliseconds(),
		}
		s.logMessage(ctx, uow, req, res, nil, map[string]interface{}{
			"guardrail_type":    "dimension",
			"room_key":          guardResult.RoomKey,
			"lookup_successful": guardResult.LookupSuccessful,
		})
		s.publishQuestionEvent(ctx, req, houseTypeCode, res, "")
		if !guardResult.LookupSuccessful {
			s.analytics.PublishChatFallback(ctx, s.eventParams(req, houseTypeCode, map[string]interface{}{
				"reason":   "dimension_lookup_miss",
				"room_key": guardResult.RoomKey,
			}))
		}
		return res, nil
	}

	// Total floor area is answered straight from the unit row: the value
	// is structured data and the LLM adds nothing but fabrication risk.
	messageLower := strings.ToLower(req.Message)
	if totalAreaQueryRegex.MatchString(messageLower) && !specificRoomQueryRegex.MatchString(messageLower) &&
		unit != nil && unit.FloorAreaM2 != nil {
		answer := fmt.Sprintf("Your %s home at %s has a total floor area of approximately %g m²",
			unit.HouseTypeCode, unit.AddressLine1, *unit.FloorAreaM2)
		if unit.SquareFootage != nil {
			answer += fmt.Sprintf(" (%g square feet)", *unit.SquareFootage)
		}
		answer += "."
		if unit.Bedrooms != nil && unit.Bathrooms != nil {
			answer += fmt.Sprintf(" This is a %d-bedroom, %d-bathroom home.", *unit.Bedrooms, *unit.Bathrooms)
		}
		answer += " Would you like to know the dimensions of a specific room?"

		res := &dto.ChatAskResponse{
			Answer:     answer,
			Source:     SourceStructuredData,
			ChunksUsed: 0,
			LatencyMs:  time.Since(start).Milliseconds(),
		}
		s.logMessage(ctx, uow, req, res, nil, nil)
		s.publishQuestionEvent(ctx, req, houseTypeCode, res, "")
		return res, nil
	}

	unitIdTag := ""
	if unit != nil {
		unitIdTag = unit.Id.String()
	}

	result, err := s.retriever.Retrieve(ctx, retrieval.Options{
		TenantId:              req.TenantId,
		DevelopmentId:         req.DevelopmentId,
		UnitId:                unitIdTag,
		HouseTypeCode:         houseTypeCode,
		Query:                 req.Message,
		Limit:                 s.retrievalLimit,
		IncludeGlobalFallback: s.globalFallback,
	})
	if err != nil {
		s.analytics.PublishError(ctx, s.eventParams(req, houseTypeCode, map[string]interface{}{
			"stage": "retrieval",
		}))
		return nil, err
	}

	if len(result.Chunks) == 0 {
		res := &dto.ChatAskResponse{
			Answer:          noDataFallbackAnswer,
			Source:          SourceFallback,
			Confidence:      string(result.Confidence),
			ChunksUsed:      0,
			SuggestFallback: true,
			LatencyMs:       time.Since(start).Milliseconds(),
		}
		s.logMessage(ctx, uow, req, res, nil, nil)
		s.publishQuestionEvent(ctx, req, houseTypeCode, res, string(result.Confidence))
		s.analytics.PublishUnanswered(ctx, s.eventParams(req, houseTypeCode, map[string]interface{}{
			"reason": "no_chunks",
		}))
		return res, nil
	}

	answerConf := retrieval.EstimateAnswerConfidence(result.Chunks)

	contextText := buildChunkContext(result.Chunks)
	userContent := "CONTEXT:\n" + contextText
	if houseContext := buildHouseContext(unit); houseContext != "" {
		userContent += houseContext
	}

	systemPrompt := residentSystemPrompt
	if greeting := buildGreetingContext(isFirstChat, unit); greeting != "" {
		systemPrompt += greeting
	}

	answer, err := s.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userContent},
		{Role: "user", Content: req.Message},
	}, llm.WithTemperature(0.7), llm.WithMaxTokens(500))
	if err != nil {
		s.analytics.PublishError(ctx, s.eventParams(req, houseTypeCode, map[string]interface{}{
			"stage": "generation",
		}))
		return nil, err
	}
	if answer == "" {
		answer = "Based on the documents available for your home, I don't see details for this item. Would you like me to check with your developer?"
	}

	// Safety net against fabricated measurements slipping past the
	// pre-retrieval guardrail.
	if valid, sanitized := guardrail.ValidateResponse(answer, req.Message, false); !valid {
		s.log.Warn("chat", "fabricated dimensions detected in generated answer", nil)
		answer = sanitized
	}

	res := &dto.ChatAskResponse{
		Answer:          answer,
		Source:          SourceRag,
		Confidence:      string(result.Confidence),
		ChunksUsed:      len(result.Chunks),
		TierBreakdown:   result.TierBreakdown,
		Citations:       buildCitations(result.Chunks),
		SuggestFallback: result.SuggestFallback,
		LatencyMs:       time.Since(start).Milliseconds(),
	}

	s.logMessage(ctx, uow, req, res, result.Chunks, map[string]interface{}{
		"answer_confidence": answerConf.Confidence,
	})
	s.publishQuestionEvent(ctx, req, houseTypeCode, res, answerConf.Confidence)
	if result.SuggestFallback {
		s.analytics.PublishChatFallback(ctx, s.eventParams(req, houseTypeCode, map[string]interface{}{
			"reason":         "low_confidence",
			"rag_confidence": string(result.Confidence),
		}))
	}

	return res, nil
}

// ensureSession creates or touches the session row and reports whether
// this is the session's first message.
func (s *chatService) ensureSession(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ChatAskRequest) bool {
	if req.SessionId == nil {
		return false
	}

	sessions := uow.ChatSessionRepository()
	session, err := sessions.FindById(ctx, *req.SessionId)
	if err != nil {
		s.log.Warn("chat", "failed to load session", map[string]interface{}{"error": err.Error()})
		return false
	}

	now := time.Now()
	if session == nil {
		err = sessions.Create(ctx, &entity.ChatSession{
			Id:            *req.SessionId,
			TenantId:      req.TenantId,
			DevelopmentId: req.DevelopmentId,
			UnitId:        req.UnitId,
			LastActiveAt:  now,
		})
		if err != nil {
			s.log.Warn("chat", "failed to create session", map[string]interface{}{"error": err.Error()})
		}
		return true
	}

	if err := sessions.TouchLastActive(ctx, session.Id, now); err != nil {
		s.log.Warn("chat", "failed to touch session", map[string]interface{}{"error": err.Error()})
	}

	count, err := uow.ChatMessageRepository().CountBySessionId(ctx, session.Id)
	if err != nil {
		return false
	}
	return count == 0
}

func buildChunkContext(chunks []*retrieval.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		title := chunk.DocumentTitle
		if title == "" {
			title = "Unknown Document"
		}
		label := ""
		switch chunk.Tier {
		case retrieval.TierUnit:
			label = " [UNIT-SPECIFIC]"
		case retrieval.TierHouseType:
			label = " [HOUSE TYPE]"
		case retrieval.TierImportant:
			label = " [IMPORTANT]"
		}
		parts = append(parts, fmt.Sprintf("[Source %d: %s]%s\n%s", i+1, title, label, chunk.Content))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func buildHouseContext(unit *entity.Unit) string {
	if unit == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nPURCHASER INFORMATION:\n")
	fmt.Fprintf(&b, "Address: %s\n", unit.AddressLine1)
	fmt.Fprintf(&b, "Unit Number: %s\n", unit.UnitNumber)
	fmt.Fprintf(&b, "House Type: %s\n", unit.HouseTypeCode)
	if unit.Bedrooms != nil {
		fmt.Fprintf(&b, "Bedrooms: %d\n", *unit.Bedrooms)
	}
	if unit.Bathrooms != nil {
		fmt.Fprintf(&b, "Bathrooms: %d\n", *unit.Bathrooms)
	}
	if unit.SquareFootage != nil {
		fmt.Fprintf(&b, "Square Footage: %g sqft\n", *unit.SquareFootage)
	}
	if unit.FloorAreaM2 != nil {
		fmt.Fprintf(&b, "Floor Area: %g m²\n", *unit.FloorAreaM2)
	}
	fmt.Fprintf(&b, "\nIMPORTANT: This purchaser lives in house type %s. When they ask about their home, "+
		"automatically use information for %s from the context. You already know their house type - never ask them for it.",
		unit.HouseTypeCode, unit.HouseTypeCode)
	return b.String()
}

func buildGreetingContext(isFirstChat bool, unit *entity.Unit) string {
	if !isFirstChat || unit == nil || unit.PurchaserName == nil || *unit.PurchaserName == "" {
		return ""
	}
	return fmt.Sprintf("\n\nFIRST MESSAGE GREETING:\nThis is the purchaser's first time chatting. "+
		"Start your response with a brief, warm welcome using their name: %q. Keep it natural and conversational - "+
		"just one sentence. For ALL subsequent messages, never use their name again unless they explicitly ask.",
		*unit.PurchaserName)
}

func buildCitations(chunks []*retrieval.ScoredChunk) []dto.ChatCitationResponse {
	seen := make(map[uuid.UUID]struct{})
	var citations []dto.ChatCitationResponse
	for _, chunk := range chunks {
		if chunk.DocumentId == nil {
			continue
		}
		if _, ok := seen[*chunk.DocumentId]; ok {
			continue
		}
		seen[*chunk.DocumentId] = struct{}{}
		citations = append(citations, dto.ChatCitationResponse{
			DocumentId:    chunk.DocumentId.String(),
			DocumentTitle: chunk.DocumentTitle,
			Tier:          string(chunk.Tier),
			Score:         chunk.FinalScore,
		})
	}
	return citations
}

func (s *chatService) logMessage(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ChatAskRequest, res *dto.ChatAskResponse, chunks []*retrieval.ScoredChunk, metadata map[string]interface{}) {
	var citedIds []string
	for _, c := range res.Citations {
		citedIds = append(citedIds, c.DocumentId)
	}

	msg := &entity.ChatMessage{
		TenantId:         req.TenantId,
		DevelopmentId:    req.DevelopmentId,
		SessionId:        req.SessionId,
		UnitId:           req.UnitId,
		UserMessage:      req.Message,
		AiMessage:        res.Answer,
		Source:           res.Source,
		LatencyMs:        int(res.LatencyMs),
		CitedDocumentIds: citedIds,
		Metadata:         metadata,
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		s.log.Error("chat", "failed to log chat message", map[string]interface{}{"error": err.Error()})
		return
	}

	var citations []*entity.ChatCitation
	for _, chunk := range chunks {
		if chunk.DocumentId == nil {
			continue
		}
		chunkId := chunk.Id
		citations = append(citations, &entity.ChatCitation{
			ChatMessageId: msg.Id,
			DocumentId:    *chunk.DocumentId,
			ChunkId:       &chunkId,
			Score:         chunk.FinalScore,
		})
	}
	if len(citations) > 0 {
		if err := uow.ChatCitationRepository().CreateBulk(ctx, citations); err != nil {
			s.log.Error("chat", "failed to log citations", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *chatService) eventParams(req *dto.ChatAskRequest, houseTypeCode string, data map[string]interface{}) analytics.Params {
	developmentId := req.DevelopmentId
	sessionId := ""
	if req.SessionId != nil {
		sessionId = req.SessionId.String()
	}
	return analytics.Params{
		TenantId:      req.TenantId,
		DevelopmentId: &developmentId,
		HouseTypeCode: houseTypeCode,
		EventCategory: "chat",
		EventData:     data,
		SessionId:     sessionId,
		UnitId:        req.UnitId,
	}
}

func (s *chatService) publishQuestionEvent(ctx context.Context, req *dto.ChatAskRequest, houseTypeCode string, res *dto.ChatAskResponse, answerConfidence string) {
	data := map[string]interface{}{
		"source":          res.Source,
		"chunks_used":     res.ChunksUsed,
		"latency_ms":      res.LatencyMs,
		"question_length": len(req.Message),
	}
	if res.Confidence != "" {
		data["rag_confidence"] = res.Confidence
	}
	if answerConfidence != "" {
		data["answer_confidence"] = answerConfidence
	}
	s.analytics.PublishChatQuestion(ctx, s.eventParams(req, houseTypeCode, data))
}
