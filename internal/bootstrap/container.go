package bootstrap

import (
	"log"
	"time"

	"ai-datacharts-be/internal/config"
	"ai-datacharts-be/internal/controller"
	"ai-datacharts-be/internal/pkg/logger"
	"ai-datacharts-be/internal/repository/memory"
	"ai-datacharts-be/internal/service"
	"ai-datacharts-be/pkg/agent"
	"ai-datacharts-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	DatasetController controller.IDatasetController
	ChatController    controller.IChatController
	ChartController   controller.IChartController
	HealthController  controller.IHealthController
}

// NewContainer wires the default dependency graph, building the suggestion
// generator from the configured LLM provider.
func NewContainer(cfg *config.Config) *Container {
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	return NewContainerWithSuggester(cfg, agent.NewLLMSuggester(llmProvider))
}

// NewContainerWithSuggester allows tests to substitute the suggestion
// generator while keeping the rest of the graph intact.
func NewContainerWithSuggester(cfg *config.Config, suggester agent.Suggester) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-Memory Session Storage (TTL answers eviction; purge sweeps expired)
	ttl := time.Duration(cfg.App.SessionTTLMinutes) * time.Minute
	sessionRepo := memory.NewSessionRepository(ttl, 10*time.Minute)

	datasetService := service.NewDatasetService(sessionRepo, sysLogger)
	chatService := service.NewChatService(sessionRepo, suggester, sysLogger)
	chartService := service.NewChartService(sessionRepo, sysLogger)

	return &Container{
		DatasetController: controller.NewDatasetController(datasetService),
		ChatController:    controller.NewChatController(chatService),
		ChartController:   controller.NewChartController(chartService),
		HealthController:  controller.NewHealthController(),
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}
