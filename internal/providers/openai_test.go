package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func chatCompletionHandler(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "local-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     5,
				"completion_tokens": 7,
				"total_tokens":      12,
			},
		})
	}
}

func TestOpenAICompatComplete_Success(t *testing.T) {
	srv := httptest.NewServer(chatCompletionHandler("hello from vllm"))
	defer srv.Close()

	c := NewOpenAICompatClient(OpenAICompatConfig{
		BaseURL:      srv.URL,
		DefaultModel: "local-model",
	})
	result, err := c.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !result.Success || result.Content != "hello from vllm" {
		t.Errorf("got %+v", result)
	}
	if result.PromptTokens != 5 || result.CompletionTokens != 7 {
		t.Errorf("token counts: got %d/%d", result.PromptTokens, result.CompletionTokens)
	}
	if result.ModelUsed != "local-model" {
		t.Errorf("model: got %q", result.ModelUsed)
	}
}

func TestOpenAICompatComplete_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":{"message":"loading model"}}`, http.StatusInternalServerError)
			return
		}
		chatCompletionHandler("after retry")(w, r)
	}))
	defer srv.Close()

	c := NewOpenAICompatClient(OpenAICompatConfig{
		BaseURL:    srv.URL,
		MaxRetries: 2,
		RetryDelay: 5 * time.Millisecond,
	})
	result, err := c.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if result.Content != "after retry" {
		t.Errorf("content: got %q", result.Content)
	}
	if result.Attempts != 2 {
		t.Errorf("attempts: got %d, want 2", result.Attempts)
	}
}

func TestOpenAICompatComplete_SurfacesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewOpenAICompatClient(OpenAICompatConfig{
		BaseURL:    srv.URL,
		MaxRetries: 2,
		RetryDelay: 5 * time.Millisecond,
	})
	result, err := c.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error")
	}
	if result.ErrorType != ErrorTypeTransport {
		t.Errorf("error type: got %q", result.ErrorType)
	}
	if result.Attempts != 1 {
		t.Errorf("attempts: got %d, want 1 (4xx must not retry)", result.Attempts)
	}
}
