package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/echolearn/echolearn/internal/config"
	"github.com/echolearn/echolearn/internal/pipeline"
	"github.com/echolearn/echolearn/internal/providers"
)

// newLogger builds the CLI logger. Logs go to stderr so structured
// command output on stdout stays parseable.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// buildClient constructs the model client selected by the config.
func buildClient(cfg *config.Config) (providers.LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return providers.NewOllamaClient(providers.OllamaConfig{
			BaseURL:      cfg.EndpointURL,
			DefaultModel: cfg.ModelName,
			Timeout:      cfg.Timeout(),
			MaxRetries:   cfg.MaxRetries,
			RetryDelay:   time.Second,
		}), nil
	case config.ProviderOpenAI:
		return providers.NewOpenAICompatClient(providers.OpenAICompatConfig{
			BaseURL:      cfg.EndpointURL,
			APIKey:       cfg.ResolveAPIKey(),
			DefaultModel: cfg.ModelName,
			Timeout:      cfg.Timeout(),
			MaxRetries:   cfg.MaxRetries,
			RetryDelay:   time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// buildOrchestrator loads config and assembles the pipeline behind it.
func buildOrchestrator(logger *slog.Logger) (*pipeline.Orchestrator, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.Get()

	client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.New(client, pipeline.Options{
		Model:              cfg.ModelName,
		TargetSectionChars: cfg.TargetSectionChars,
		Timeout:            cfg.Timeout(),
		Temperature:        cfg.Temperature,
		MaxTokens:          cfg.MaxTokens,
		Concurrency:        cfg.ConcurrencyLimit,
		RequestsPerSecond:  cfg.RequestsPerSecond,
	}, logger), nil
}
