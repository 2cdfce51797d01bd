package bootstrap

import (
	"log"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/controller"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/implementation"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/embedding"
	"ai-tutor-be/pkg/llm/factory"
	"ai-tutor-be/pkg/rag"
	"ai-tutor-be/pkg/subagent"
	"ai-tutor-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	ChatController   controller.IChatController
	CorpusController controller.ICorpusController

	// Background services (exposed for main.go to run)
	IngestService service.IIngestService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (text-embedding-3-small)")
	} else {
		embeddingProvider = embedding.NewLocalProvider(
			cfg.Ai.LocalBaseURL,
			cfg.Ai.LocalModel,
		)
		log.Printf("[INFO] Using Embedding Provider: LOCAL (%s)", cfg.Ai.LocalModel)
	}

	// Vector index sized to the active provider
	index, err := vectorindex.NewPGVectorIndex(db, cfg.Ai.IndexTable, embeddingProvider.Dimension())
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize vector index: %v", err)
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Repositories
	userRepo := implementation.NewUserRepository(db)
	conversationRepo := implementation.NewConversationRepository(db)
	turnStore := service.NewConversationTurnStore(conversationRepo)

	// Pipeline
	engine, err := rag.NewEngine(embeddingProvider, index, llmProvider, turnStore, sysLogger, rag.Config{
		TopK:            cfg.Ai.TopK,
		Temperature:     &cfg.Ai.Temperature,
		MaxAnswerTokens: cfg.Ai.MaxAnswerTokens,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize generation engine: %v", err)
	}

	personalizer := subagent.NewPersonalizer(llmProvider, sysLogger)
	translator := subagent.NewTranslator(llmProvider, sysLogger)
	codeExplainer := subagent.NewCodeExplainer(llmProvider, sysLogger)

	// Services
	authService := service.NewAuthService(userRepo)
	chatService := service.NewChatService(
		engine,
		personalizer,
		translator,
		codeExplainer,
		userRepo,
		conversationRepo,
		sysLogger,
	)
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	ingestService := service.NewIngestService(
		pubSub,
		cfg.Keys.IngestTopic,
		embeddingProvider,
		index,
		sysLogger,
	)

	return &Container{
		AuthController:   controller.NewAuthController(authService),
		ChatController:   controller.NewChatController(chatService),
		CorpusController: controller.NewCorpusController(publisherService, index),
		IngestService:    ingestService,
	}
}
