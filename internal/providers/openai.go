package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/google/uuid"
)

const (
	OpenAICompatName = "openai"

	// Local OpenAI-compatible runtimes rarely check the key, but the SDK
	// requires one.
	openAICompatDefaultKey = "local"
)

// OpenAICompatConfig holds configuration for an OpenAI-compatible endpoint
// (llama.cpp server, vLLM, or Ollama's /v1 facade).
type OpenAICompatConfig struct {
	BaseURL      string // e.g. "http://localhost:11434/v1"
	APIKey       string
	DefaultModel string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	HTTPClient   *http.Client // Optional (tests)
}

// OpenAICompatClient implements LLMClient using the official OpenAI SDK
// pointed at a local base URL.
type OpenAICompatClient struct {
	defaultModel string
	timeout      time.Duration
	maxRetries   int
	retryDelay   time.Duration
	client       openai.Client
}

// NewOpenAICompatClient creates a new OpenAI-compatible client.
func NewOpenAICompatClient(cfg OpenAICompatConfig) *OpenAICompatClient {
	if cfg.APIKey == "" {
		cfg.APIKey = openAICompatDefaultKey
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		// Retries are handled here with the shared backoff policy, not by
		// the SDK, so both clients behave identically.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAICompatClient{
		defaultModel: cfg.DefaultModel,
		timeout:      cfg.Timeout,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
		client:       openai.NewClient(opts...),
	}
}

// Name returns the client identifier.
func (c *OpenAICompatClient) Name() string {
	return OpenAICompatName
}

// Complete sends a prompt as a single-message chat completion.
func (c *OpenAICompatClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	result := &CompletionResult{
		RequestID: requestID,
		Provider:  OpenAICompatName,
		ModelUsed: model,
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	var completion *openai.ChatCompletion
	err := runWithRetry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		result.Attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		resp, err := c.client.Chat.Completions.New(attemptCtx, params)
		if err != nil {
			return classifyOpenAIError(err)
		}
		if len(resp.Choices) == 0 {
			return transportFailure(fmt.Errorf("no choices in response"), false)
		}
		completion = resp
		return nil
	})

	result.ExecutionTime = time.Since(start)

	if err != nil {
		result.Success = false
		result.ErrorType = failureType(err)
		result.ErrorMessage = err.Error()
		return result, fmt.Errorf("chat completion failed after %d attempts: %w", result.Attempts, err)
	}

	result.Success = true
	result.Content = completion.Choices[0].Message.Content
	result.PromptTokens = int(completion.Usage.PromptTokens)
	result.CompletionTokens = int(completion.Usage.CompletionTokens)
	if completion.Model != "" {
		result.ModelUsed = completion.Model
	}
	return result, nil
}

// classifyOpenAIError maps SDK errors onto the failure taxonomy.
func classifyOpenAIError(err error) *callFailure {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		cause := fmt.Errorf("endpoint error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		return transportFailure(cause, retryableStatus(apiErr.StatusCode))
	}
	return classifyNetError(err)
}

// Verify interface
var _ LLMClient = (*OpenAICompatClient)(nil)
