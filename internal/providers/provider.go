// Package providers implements clients for local inference endpoints.
//
// Two real clients are included: one for Ollama's native generate API and
// one for OpenAI-compatible runtimes (llama.cpp, vLLM, Ollama's OpenAI
// facade) via the official SDK. Both retry transient transport failures and
// timeouts with exponential backoff; malformed model output is never retried
// here, that belongs to the parser and orchestrator.
package providers

import (
	"context"
	"time"
)

// Error types reported on CompletionResult.
const (
	ErrorTypeTransport = "transport"
	ErrorTypeTimeout   = "timeout"
)

// LLMClient is the capability the pipeline depends on. Tests substitute
// deterministic mocks for the nondeterministic model.
type LLMClient interface {
	// Complete sends a prompt and returns the raw text completion.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Name returns the client identifier (e.g. "ollama").
	Name() string
}

// CompletionRequest is a single prompt sent to an inference endpoint.
type CompletionRequest struct {
	// Required
	Prompt string `json:"prompt"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	// Generation parameters
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Timeout     time.Duration `json:"-"`

	// Request tracking
	RequestID string `json:"-"`
}

// CompletionResult is the outcome of a completion call. On failure Success
// is false and ErrorType carries the taxonomy ("transport" or "timeout");
// the error return holds the cause.
type CompletionResult struct {
	Content string `json:"content"`

	// Token counts (zero when the endpoint does not report usage)
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`

	// Timing and provenance
	ExecutionTime time.Duration `json:"execution_time"`
	Provider      string        `json:"provider"`
	ModelUsed     string        `json:"model_used"`

	// Request tracking
	RequestID string `json:"request_id"`
	Attempts  int    `json:"attempts"`

	// Success/error
	Success      bool   `json:"success"`
	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
