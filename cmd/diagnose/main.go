package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"property-assistant-be/internal/config"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/implementation"
	"property-assistant-be/pkg/database"
	"property-assistant-be/pkg/embedding"
	"property-assistant-be/pkg/rag/retrieval"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Retrieval diagnostic: runs a set of sample queries through the tiered
// retriever against a real development and prints per-tier hit counts
// and scores. Usage:
//
//	go run ./cmd/diagnose <tenant_id> <development_id> [house_type_code]
func main() {
	cfg := config.Load()

	if len(os.Args) < 3 {
		log.Fatal("Usage: diagnose <tenant_id> <development_id> [house_type_code]")
	}
	tenantId, err := uuid.Parse(os.Args[1])
	if err != nil {
		log.Fatal("Invalid tenant ID:", err)
	}
	developmentId, err := uuid.Parse(os.Args[2])
	if err != nil {
		log.Fatal("Invalid development ID:", err)
	}
	houseTypeCode := ""
	if len(os.Args) > 3 {
		houseTypeCode = os.Args[3]
	}

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(
			cfg.Ai.OpenAIBaseURL,
			cfg.Ai.OpenAIAPIKey,
			cfg.Ai.EmbeddingModel,
			cfg.Ai.EmbeddingDimensions,
			cfg.Ai.EmbeddingTimeout,
			cfg.Ai.EmbeddingRetries,
		)
	}

	sysLogger := logger.NewZapLogger("logs/diagnose.log", false)
	retriever := retrieval.NewRetriever(
		implementation.NewDocChunkRepository(db),
		implementation.NewDocumentSectionRepository(db),
		implementation.NewDevelopmentRepository(db),
		implementation.NewProjectRepository(db),
		embeddingProvider,
		sysLogger,
	)

	queries := []string{
		"What size is my living room?",
		"Who supplied the kitchen?",
		"What boiler is installed?",
		"When does my warranty expire?",
		"What paint colour is used on the walls?",
	}

	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed)

	header.Println(strings.Repeat("=", 80))
	header.Println("RETRIEVAL DIAGNOSTIC")
	header.Printf("tenant=%s development=%s house_type=%q\n", tenantId, developmentId, houseTypeCode)
	header.Println(strings.Repeat("=", 80))

	ctx := context.Background()
	for _, query := range queries {
		fmt.Println()
		header.Printf("QUERY: %s\n", query)

		result, err := retriever.Retrieve(ctx, retrieval.Options{
			TenantId:              tenantId,
			DevelopmentId:         developmentId,
			HouseTypeCode:         houseTypeCode,
			Query:                 query,
			Limit:                 10,
			IncludeGlobalFallback: true,
		})
		if err != nil {
			bad.Printf("  retrieval failed: %v\n", err)
			continue
		}

		switch result.Confidence {
		case retrieval.ConfidenceHigh:
			good.Printf("  confidence: %s (%.3f)\n", result.Confidence, result.ConfidenceScore)
		case retrieval.ConfidenceMedium:
			warn.Printf("  confidence: %s (%.3f)\n", result.Confidence, result.ConfidenceScore)
		default:
			bad.Printf("  confidence: %s (%.3f)\n", result.Confidence, result.ConfidenceScore)
		}

		fmt.Printf("  chunks: %d, tiers: %v, suggest_fallback: %v\n",
			len(result.Chunks), result.TierBreakdown, result.SuggestFallback)

		for i, chunk := range result.Chunks {
			if i >= 3 {
				break
			}
			preview := chunk.Content
			if len(preview) > 80 {
				preview = preview[:80] + "..."
			}
			fmt.Printf("  [%d] tier=%-11s vector=%.3f keyword=%.3f final=%.3f %s\n",
				i+1, chunk.Tier, chunk.VectorScore, chunk.KeywordScore, chunk.FinalScore,
				strings.ReplaceAll(preview, "\n", " "))
		}
	}
}
