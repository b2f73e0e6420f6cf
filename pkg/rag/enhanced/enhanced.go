package enhanced

import (
	"context"
	"sort"
	"strings"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/contract"
	"property-assistant-be/pkg/embedding"

	"github.com/google/uuid"
)

// QuestionType classifies a query so document kinds can be boosted toward
// the material most likely to answer it.
type QuestionType string

const (
	QuestionSpatial       QuestionType = "spatial"
	QuestionWarranty      QuestionType = "warranty"
	QuestionSpecification QuestionType = "specification"
	QuestionGeneral       QuestionType = "general"
)

// Scope records how far retrieval had to widen to find enough material.
type Scope string

const (
	ScopeHouseType   Scope = "house_type"
	ScopeDevelopment Scope = "development"
	ScopeTenant      Scope = "tenant"
	ScopeNone        Scope = "none"
)

// Stage similarity floors, expressed as cosine distance cutoffs. Each wider
// stage accepts weaker matches than the one before it.
const (
	houseTypeMaxDistance   = 0.7
	developmentMaxDistance = 0.75
	tenantMaxDistance      = 0.8

	// A stage only runs when the stages before it produced fewer results.
	minResultsThreshold = 3

	defaultLimit = 10

	// Legacy section hits carry no doc kind, so they get a flat boost.
	sectionBoost        = 1.1
	sectionsMaxDistance = 0.7

	// Content prefix length used to dedup section hits against chunk hits
	// that were ingested from the same source text.
	dedupPrefixLen = 100
)

var spatialKeywords = []string{
	"size", "dimension", "area", "floor area", "square", "sqm", "m2", "m²",
	"length", "width", "height", "room", "rooms", "floor", "plan", "layout",
	"bedroom", "bathroom", "kitchen", "living", "dining", "utility", "garage",
	"how big", "how large", "how many rooms", "floorplan", "floor plan",
	"measure", "metres", "meters", "feet", "space", "total area",
}

var warrantyKeywords = []string{
	"warranty", "guarantee", "defect", "repair", "fix", "broken", "damage",
	"cover", "coverage", "claim", "expire", "expiry", "valid",
	"protected", "builder", "construction", "structural", "homebond",
}

var specificationKeywords = []string{
	"specification", "spec", "specs", "material", "brand", "model",
	"supplier", "manufacturer", "installed", "type", "grade", "finish",
}

// docKindBoosts multiplies raw similarity per document kind. Spatial
// questions favor floorplan material, warranty questions favor warranty and
// legal documents, specification questions favor specs and brochures.
var docKindBoosts = map[QuestionType]map[string]float64{
	QuestionSpatial: {
		"floorplan_summary": 1.5,
		"floorplan":         1.3,
		"brochure":          1.1,
		"specification":     1.0,
		"warranty":          0.8,
		"legal":             0.7,
		"other":             0.9,
	},
	QuestionWarranty: {
		"warranty":          1.5,
		"legal":             1.2,
		"specification":     1.0,
		"brochure":          0.9,
		"floorplan":         0.7,
		"floorplan_summary": 0.7,
		"other":             0.9,
	},
	QuestionSpecification: {
		"specification":     1.5,
		"brochure":          1.2,
		"warranty":          1.0,
		"floorplan":         0.8,
		"floorplan_summary": 0.8,
		"legal":             0.7,
		"other":             0.9,
	},
}

func countMatches(question string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(question, kw) {
			count++
		}
	}
	return count
}

// DetectQuestionType picks the category with the most keyword hits. Ties
// resolve spatial first, then warranty, then specification.
func DetectQuestionType(question string) QuestionType {
	lower := strings.ToLower(question)

	spatial := countMatches(lower, spatialKeywords)
	warranty := countMatches(lower, warrantyKeywords)
	spec := countMatches(lower, specificationKeywords)

	max := spatial
	if warranty > max {
		max = warranty
	}
	if spec > max {
		max = spec
	}

	switch {
	case max == 0:
		return QuestionGeneral
	case spatial == max:
		return QuestionSpatial
	case warranty == max:
		return QuestionWarranty
	default:
		return QuestionSpecification
	}
}

func IsSpatialQuestion(question string) bool {
	return DetectQuestionType(question) == QuestionSpatial
}

func docKindBoost(docKind *string, questionType QuestionType) float64 {
	if docKind == nil || *docKind == "" {
		return 1.0
	}
	kinds, ok := docKindBoosts[questionType]
	if !ok {
		return 1.0
	}
	boost, ok := kinds[*docKind]
	if !ok {
		return 1.0
	}
	return boost
}

// Chunk is one retrieved passage with its raw similarity and the
// kind-boosted score retrieval ranks by.
type Chunk struct {
	Id            uuid.UUID
	Content       string
	DocumentId    *uuid.UUID
	DocumentTitle string
	DocKind       string
	HouseTypeCode string
	Similarity    float64
	BoostedScore  float64
	ScopeLevel    Scope
	Metadata      map[string]interface{}
}

// FloorplanRoom is one vision-extracted room measurement attached to the
// prompt context for spatial questions.
type FloorplanRoom struct {
	RoomName   string
	RoomKey    string
	FloorName  *string
	LengthM    *float64
	WidthM     *float64
	AreaSqm    *float64
	Confidence float64
}

type Result struct {
	Chunks        []*Chunk
	FloorplanData []*FloorplanRoom
	QuestionType  QuestionType
	TotalChunks   int
	ScopeUsed     Scope
}

type Options struct {
	TenantId      uuid.UUID
	DevelopmentId uuid.UUID
	HouseTypeCode string
	Query         string
	Limit         int
}

// Retriever widens scope stage by stage, boosts by document kind per the
// detected question type, and attaches floorplan measurements for spatial
// questions.
type Retriever struct {
	chunks       contract.DocChunkRepository
	sections     contract.DocumentSectionRepository
	developments contract.DevelopmentRepository
	projects     contract.ProjectRepository
	rooms        contract.UnitRoomDimensionRepository
	embedder     embedding.Provider
	log          logger.ILogger
}

func NewRetriever(
	chunks contract.DocChunkRepository,
	sections contract.DocumentSectionRepository,
	developments contract.DevelopmentRepository,
	projects contract.ProjectRepository,
	rooms contract.UnitRoomDimensionRepository,
	embedder embedding.Provider,
	log logger.ILogger,
) *Retriever {
	return &Retriever{
		chunks:       chunks,
		sections:     sections,
		developments: developments,
		projects:     projects,
		rooms:        rooms,
		embedder:     embedder,
		log:          log,
	}
}

func (r *Retriever) toChunks(rows []*contract.ScoredDocChunk, questionType QuestionType, scope Scope) []*Chunk {
	chunks := make([]*Chunk, len(rows))
	for i, row := range rows {
		similarity := row.Similarity
		if similarity < 0 {
			similarity = 0
		}

		title := ""
		if row.Chunk.DocumentTitle != nil {
			title = *row.Chunk.DocumentTitle
		}
		docKind := ""
		if row.Chunk.DocKind != nil {
			docKind = *row.Chunk.DocKind
		}
		houseType := ""
		if row.Chunk.HouseTypeCode != nil {
			houseType = *row.Chunk.HouseTypeCode
		}

		chunks[i] = &Chunk{
			Id:            row.Chunk.Id,
			Content:       row.Chunk.Content,
			DocumentId:    row.Chunk.DocumentId,
			DocumentTitle: title,
			DocKind:       docKind,
			HouseTypeCode: houseType,
			Similarity:    similarity,
			BoostedScore:  similarity * docKindBoost(row.Chunk.DocKind, questionType),
			ScopeLevel:    scope,
			Metadata:      row.Chunk.Metadata,
		}
	}
	return chunks
}

func appendNew(chunks, incoming []*Chunk) []*Chunk {
	seen := make(map[uuid.UUID]struct{}, len(chunks))
	for _, c := range chunks {
		seen[c.Id] = struct{}{}
	}
	for _, c := range incoming {
		if _, ok := seen[c.Id]; ok {
			continue
		}
		chunks = append(chunks, c)
	}
	return chunks
}

// Retrieve runs the staged search for one question. Chunk stage failures
// abort; the legacy section and floorplan lookups degrade to empty since
// both are supplementary.
func (r *Retriever) Retrieve(ctx context.Context, opts Options) (*Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	questionType := DetectQuestionType(opts.Query)

	emb, err := r.embedder.Generate(ctx, opts.Query)
	if err != nil {
		return nil, err
	}
	vec := emb.Values

	var chunks []*Chunk
	scopeUsed := ScopeNone
	hasDevelopment := opts.DevelopmentId != uuid.Nil

	if hasDevelopment && opts.HouseTypeCode != "" {
		rows, err := r.chunks.SearchByHouseType(ctx, opts.TenantId, opts.DevelopmentId, opts.HouseTypeCode, vec, houseTypeMaxDistance, limit*2)
		if err != nil {
			return nil, err
		}
		chunks = r.toChunks(rows, questionType, ScopeHouseType)
		if len(chunks) >= minResultsThreshold {
			scopeUsed = ScopeHouseType
		}
	}

	if hasDevelopment && len(chunks) < minResultsThreshold {
		rows, err := r.chunks.SearchDevelopmentPreferHouseType(ctx, opts.TenantId, opts.DevelopmentId, opts.HouseTypeCode, vec, developmentMaxDistance, limit*3)
		if err != nil {
			return nil, err
		}
		chunks = appendNew(chunks, r.toChunks(rows, questionType, ScopeDevelopment))
		if len(chunks) >= minResultsThreshold && scopeUsed == ScopeNone {
			scopeUsed = ScopeDevelopment
		}
	}

	if len(chunks) < minResultsThreshold {
		rows, err := r.chunks.SearchTenantWide(ctx, opts.TenantId, vec, tenantMaxDistance, limit*3)
		if err != nil {
			return nil, err
		}
		chunks = appendNew(chunks, r.toChunks(rows, questionType, ScopeTenant))
		if len(chunks) > 0 && scopeUsed == ScopeNone {
			scopeUsed = ScopeTenant
		}
	}

	if hasDevelopment && len(chunks) < minResultsThreshold {
		sectionChunks := r.searchLegacySections(ctx, opts.DevelopmentId, vec, limit)
		if len(sectionChunks) > 0 {
			existing := make(map[string]struct{}, len(chunks))
			for _, c := range chunks {
				existing[contentPrefix(c.Content)] = struct{}{}
			}
			added := 0
			for _, c := range sectionChunks {
				if _, ok := existing[contentPrefix(c.Content)]; ok {
					continue
				}
				chunks = append(chunks, c)
				added++
			}
			if added > 0 && scopeUsed == ScopeNone {
				scopeUsed = ScopeDevelopment
			}
		}
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].BoostedScore > chunks[j].BoostedScore
	})
	if len(chunks) > limit {
		chunks = chunks[:limit]
	}

	var floorplanData []*FloorplanRoom
	if questionType == QuestionSpatial && hasDevelopment {
		floorplanData = r.fetchFloorplanRooms(ctx, opts.TenantId, opts.DevelopmentId, opts.HouseTypeCode)
	}

	r.log.Info("enhanced", "retrieval complete", map[string]interface{}{
		"total_chunks":    len(chunks),
		"scope_used":      string(scopeUsed),
		"question_type":   string(questionType),
		"floorplan_rooms": len(floorplanData),
	})

	return &Result{
		Chunks:        chunks,
		FloorplanData: floorplanData,
		QuestionType:  questionType,
		TotalChunks:   len(chunks),
		ScopeUsed:     scopeUsed,
	}, nil
}

func contentPrefix(content string) string {
	if len(content) > dedupPrefixLen {
		return content[:dedupPrefixLen]
	}
	return content
}

// searchLegacySections maps the development to its legacy project by name
// and queries the old section table. Failures log and return nothing.
func (r *Retriever) searchLegacySections(ctx context.Context, developmentId uuid.UUID, vec []float32, limit int) []*Chunk {
	development, err := r.developments.FindById(ctx, developmentId)
	if err != nil || development == nil {
		if err != nil {
			r.log.Warn("enhanced", "development lookup failed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	project, err := r.projects.FindByName(ctx, development.Name)
	if err != nil || project == nil {
		if err != nil {
			r.log.Warn("enhanced", "project lookup failed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	sections, err := r.sections.SearchByProject(ctx, project.Id, vec, sectionsMaxDistance, limit)
	if err != nil {
		r.log.Warn("enhanced", "section search failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	chunks := make([]*Chunk, len(sections))
	for i, s := range sections {
		chunks[i] = &Chunk{
			Id:           s.Section.Id,
			Content:      s.Section.Content,
			DocKind:      "document_section",
			Similarity:   s.Similarity,
			BoostedScore: s.Similarity * sectionBoost,
			ScopeLevel:   ScopeDevelopment,
			Metadata: map[string]interface{}{
				"source":     "document_sections",
				"project_id": s.Section.ProjectId.String(),
			},
		}
	}
	return chunks
}

func (r *Retriever) fetchFloorplanRooms(ctx context.Context, tenantId, developmentId uuid.UUID, houseTypeCode string) []*FloorplanRoom {
	var rows []*entity.UnitRoomDimension
	var err error
	if houseTypeCode != "" {
		rows, err = r.rooms.ListVisionRoomsByHouseType(ctx, tenantId, developmentId, houseTypeCode)
	} else {
		rows, err = r.rooms.ListVisionRoomsDistinct(ctx, tenantId, developmentId)
	}
	if err != nil {
		r.log.Warn("enhanced", "floorplan vision lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	rooms := make([]*FloorplanRoom, len(rows))
	for i, row := range rows {
		rooms[i] = &FloorplanRoom{
			RoomName:   row.RoomName,
			RoomKey:    row.RoomKey,
			FloorName:  row.Floor,
			LengthM:    row.LengthM,
			WidthM:     row.WidthM,
			AreaSqm:    row.AreaSqm,
			Confidence: row.Confidence,
		}
	}
	return rooms
}
