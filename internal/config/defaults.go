package config

import "time"

// Provider type identifiers accepted by the "provider" config key.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds all tunable settings for the pipeline and CLI.
type Config struct {
	// Provider selects the model backend: "ollama" or "openai".
	Provider string `mapstructure:"provider"`

	// EndpointURL is the base URL of the model endpoint.
	EndpointURL string `mapstructure:"endpoint_url"`

	// ModelName is the model identifier passed to the backend.
	ModelName string `mapstructure:"model_name"`

	// APIKey is sent to OpenAI-compatible backends. Supports ${ENV_VAR}
	// references. Local Ollama ignores it.
	APIKey string `mapstructure:"api_key"`

	// TargetSectionChars is the soft size limit for a study section.
	TargetSectionChars int `mapstructure:"target_section_chars"`

	// TimeoutSeconds bounds a single model call attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// MaxRetries is the number of retry attempts after the first call.
	MaxRetries int `mapstructure:"max_retries"`

	// ConcurrencyLimit bounds in-flight sections during summarization.
	ConcurrencyLimit int `mapstructure:"concurrency_limit"`

	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	// RequestsPerSecond is the model-call rate limit.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// DefaultConfig returns the configuration used when no file or
// environment overrides are present. Defaults target a local Ollama
// instance serving a small instruct model.
func DefaultConfig() *Config {
	return &Config{
		Provider:           ProviderOllama,
		EndpointURL:        "http://localhost:11434",
		ModelName:          "gemma3n:e2b",
		TargetSectionChars: 800,
		TimeoutSeconds:     120,
		MaxRetries:         2,
		ConcurrencyLimit:   4,
		Temperature:        0.2,
		MaxTokens:          1024,
		RequestsPerSecond:  2.0,
	}
}

// Timeout returns the per-attempt timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
