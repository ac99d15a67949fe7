package bootstrap

import (
	"log"

	"averin-be/internal/config"
	"averin-be/internal/controller"
	"averin-be/internal/pkg/logger"
	"averin-be/internal/repository/unitofwork"
	"averin-be/internal/service"
	"averin-be/pkg/embedding"
	"averin-be/pkg/llm/factory"

	pktNats "averin-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController       controller.INoteController
	LinkController       controller.ILinkController
	ActionController     controller.IActionController
	AttachmentController controller.IAttachmentController
	VaultController      controller.IVaultController
	ChatController       controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for graceful shutdown
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ingestLogger := logger.NewIsolatedLogger("logs/ingest.log")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS event bus. The app still works without it, indexing failures
	// just go unreported.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedItemTopic, pubSub)
	consumerService, err := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedItemTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
		cfg.Ai.ConsumerWorkers,
		ingestLogger,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize ingestion consumer: %v", err)
	}

	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)
	linkService := service.NewLinkService(uowFactory, publisherService, sysLogger)
	actionService := service.NewActionService(uowFactory, publisherService, sysLogger)
	attachmentService := service.NewAttachmentService(uowFactory, publisherService, sysLogger)
	vaultService := service.NewVaultService(noteService, linkService, actionService, attachmentService)

	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		cfg.Ai.RetrievalLimit,
		cfg.Ai.ContextMaxChars,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		NoteController:       controller.NewNoteController(noteService),
		LinkController:       controller.NewLinkController(linkService),
		ActionController:     controller.NewActionController(actionService),
		AttachmentController: controller.NewAttachmentController(attachmentService),
		VaultController:      controller.NewVaultController(vaultService),
		ChatController:       controller.NewChatController(chatService, sysLogger),

		ConsumerService: consumerService,
		NatsPublisher:   natsPub,
		Logger:          sysLogger,
	}
}
