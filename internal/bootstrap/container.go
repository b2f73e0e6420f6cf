package bootstrap

import (
	"context"
	"log"
	"time"

	"property-assistant-be/internal/config"
	"property-assistant-be/internal/controller"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/implementation"
	"property-assistant-be/internal/repository/unitofwork"
	"property-assistant-be/internal/service"
	"property-assistant-be/pkg/analytics"
	"property-assistant-be/pkg/embedding"
	"property-assistant-be/pkg/guardrail"
	"property-assistant-be/pkg/llm/factory"
	"property-assistant-be/pkg/rag/enhanced"
	"property-assistant-be/pkg/rag/hybrid"
	"property-assistant-be/pkg/rag/retrieval"

	pktNats "property-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	DimensionController controller.IDimensionController
	DocumentController  controller.IDocumentController
	SearchController    controller.ISearchController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (analytics events); chat must work without it
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (embedding cache)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisAvailable := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (embedding cache disabled)", err)
		redisAvailable = false
	}

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(
			cfg.Ai.OpenAIBaseURL,
			cfg.Ai.OpenAIAPIKey,
			cfg.Ai.EmbeddingModel,
			cfg.Ai.EmbeddingDimensions,
			cfg.Ai.EmbeddingTimeout,
			cfg.Ai.EmbeddingRetries,
		)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}
	if redisAvailable {
		embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb, cfg.Ai.EmbeddingModel, 24*time.Hour)
		log.Printf("[INFO] Embedding cache enabled (Redis)")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Retrieval Stack
	chunkRepo := implementation.NewDocChunkRepository(db)
	sectionRepo := implementation.NewDocumentSectionRepository(db)
	developmentRepo := implementation.NewDevelopmentRepository(db)
	projectRepo := implementation.NewProjectRepository(db)
	roomRepo := implementation.NewUnitRoomDimensionRepository(db)
	profileRepo := implementation.NewIntelligenceProfileRepository(db)
	houseTypeRepo := implementation.NewHouseTypeRepository(db)
	settingRepo := implementation.NewDeveloperSettingRepository(db)

	tieredRetriever := retrieval.NewRetriever(chunkRepo, sectionRepo, developmentRepo, projectRepo, embeddingProvider, sysLogger)
	hybridRetriever := hybrid.NewRetriever(chunkRepo, embeddingProvider, sysLogger)
	enhancedRetriever := enhanced.NewRetriever(chunkRepo, sectionRepo, developmentRepo, projectRepo, roomRepo, embeddingProvider, sysLogger)

	// 5. Dimension Guardrail
	dimensionLookup := guardrail.NewLookup(roomRepo, profileRepo, houseTypeRepo, sysLogger)
	guardrailSettings := guardrail.NewSettingsProvider(settingRepo, sysLogger)
	dimensionGuardrail := guardrail.NewGuardrail(dimensionLookup, guardrailSettings, sysLogger)

	// 6. Analytics
	analyticsPublisher := analytics.NewNatsPublisher(natsPub, sysLogger)

	// 7. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		uowFactory,
		embeddingProvider,
	)

	chatService := service.NewChatService(
		uowFactory,
		tieredRetriever,
		dimensionGuardrail,
		llmProvider,
		analyticsPublisher,
		sysLogger,
		cfg.Retrieval.Limit,
		cfg.Retrieval.GlobalFallback,
	)
	dimensionService := service.NewDimensionService(dimensionLookup, guardrailSettings)
	documentService := service.NewDocumentService(uowFactory, publisherService, sysLogger)
	searchService := service.NewSearchService(hybridRetriever, enhancedRetriever, cfg.Retrieval.HybridLimit)

	// 8. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		DimensionController: controller.NewDimensionController(dimensionService),
		DocumentController:  controller.NewDocumentController(documentService),
		SearchController:    controller.NewSearchController(searchService),
		ConsumerService:     consumerService,
	}
}
