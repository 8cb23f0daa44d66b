package providers

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	TimeoutTimes int // First N requests fail with a timeout (0 = never)

	// ResponseText is returned when Responses is exhausted or empty.
	ResponseText string
	// Responses are returned one per successful request, in order.
	Responses []string

	// FailPrompts maps a prompt substring to an error message; a matching
	// request fails with a transport error. Useful for per-section failures.
	FailPrompts map[string]string

	// State
	requestCount atomic.Int64
	responseIdx  atomic.Int64
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Complete returns the scripted response, failing first if configured to.
func (c *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	result := &CompletionResult{
		RequestID: fmt.Sprintf("mock-%d", count),
		Provider:  MockClientName,
		ModelUsed: req.Model,
		Attempts:  1,
	}

	fail := func(errorType, msg string) (*CompletionResult, error) {
		result.Success = false
		result.ErrorType = errorType
		result.ErrorMessage = msg
		result.ExecutionTime = time.Since(start)
		return result, fmt.Errorf("%s", msg)
	}

	if c.ShouldFail {
		return fail(ErrorTypeTransport, "mock client configured to fail")
	}
	if c.TimeoutTimes > 0 && count <= int64(c.TimeoutTimes) {
		return fail(ErrorTypeTimeout, fmt.Sprintf("mock timeout on request %d", count))
	}
	for substr, msg := range c.FailPrompts {
		if substr != "" && strings.Contains(req.Prompt, substr) {
			return fail(ErrorTypeTransport, msg)
		}
	}

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return fail(ErrorTypeTimeout, ctx.Err().Error())
		}
	}

	result.Success = true
	result.Content = c.nextResponse()
	result.ExecutionTime = time.Since(start)

	// Rough token estimate, mirrors real clients closely enough for tests.
	result.PromptTokens = len(req.Prompt) / 4
	result.CompletionTokens = len(result.Content) / 4

	return result, nil
}

func (c *MockClient) nextResponse() string {
	if len(c.Responses) > 0 {
		idx := c.responseIdx.Add(1) - 1
		if int(idx) < len(c.Responses) {
			return c.Responses[idx]
		}
	}
	return c.ResponseText
}

// RequestCount returns the number of requests made.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// Reset resets the request and response counters.
func (c *MockClient) Reset() {
	c.requestCount.Store(0)
	c.responseIdx.Store(0)
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)
