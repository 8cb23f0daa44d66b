package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	OllamaName    = "ollama"
	OllamaBaseURL = "http://localhost:11434"

	ollamaDefaultModel = "gemma3n:e2b"
)

// OllamaConfig holds configuration for the Ollama client.
type OllamaConfig struct {
	BaseURL      string
	DefaultModel string
	Timeout      time.Duration // Per-call deadline
	MaxRetries   int           // Transport retry budget (default: 2)
	RetryDelay   time.Duration // Base delay between retries (default: 1s)
	HTTPClient   *http.Client  // Optional (tests)
}

// OllamaClient implements LLMClient against a local Ollama generate endpoint.
type OllamaClient struct {
	baseURL      string
	defaultModel string
	timeout      time.Duration
	maxRetries   int
	retryDelay   time.Duration
	client       *http.Client
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OllamaBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = ollamaDefaultModel
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
		// Per-attempt deadlines come from the request context, not the
		// transport, so retries get a fresh budget each time.
		httpClient = &http.Client{}
	}

	return &OllamaClient{
		baseURL:      cfg.BaseURL,
		defaultModel: cfg.DefaultModel,
		timeout:      cfg.Timeout,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
		client:       httpClient,
	}
}

// Name returns the client identifier.
func (c *OllamaClient) Name() string {
	return OllamaName
}

// Complete sends a prompt to /api/generate and returns the completion.
func (c *OllamaClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
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
		Provider:  OllamaName,
		ModelUsed: model,
	}

	body := ollamaGenerateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Stream: false,
	}
	if req.Temperature > 0 {
		body.Options.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		body.Options.NumPredict = req.MaxTokens
	}

	var genResp *ollamaGenerateResponse
	err := runWithRetry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		result.Attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		resp, err := c.doGenerate(attemptCtx, &body)
		if err != nil {
			return err
		}
		genResp = resp
		return nil
	})

	result.ExecutionTime = time.Since(start)

	if err != nil {
		result.Success = false
		result.ErrorType = failureType(err)
		result.ErrorMessage = err.Error()
		return result, fmt.Errorf("ollama generate failed after %d attempts: %w", result.Attempts, err)
	}

	result.Success = true
	result.Content = genResp.Response
	result.PromptTokens = genResp.PromptEvalCount
	result.CompletionTokens = genResp.EvalCount
	return result, nil
}

// doGenerate performs a single HTTP attempt, classifying failures for the
// retry policy.
func (c *OllamaClient) doGenerate(ctx context.Context, body *ollamaGenerateRequest) (*ollamaGenerateResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to marshal request: %w", err), false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to create request: %w", err), false)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyNetError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyNetError(err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(respBody))
		return nil, transportFailure(err, retryableStatus(resp.StatusCode))
	}

	var genResp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, transportFailure(fmt.Errorf("failed to unmarshal response: %w", err), false)
	}
	return &genResp, nil
}

// Ollama API types

type ollamaGenerateRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Stream  bool   `json:"stream"`
	Options struct {
		Temperature float64 `json:"temperature,omitempty"`
		NumPredict  int     `json:"num_predict,omitempty"`
	} `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// Verify interface
var _ LLMClient = (*OllamaClient)(nil)
