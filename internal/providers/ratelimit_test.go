package providers

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	r := NewRateLimiter(5.0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := r.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("burst of 5 took %v, should be immediate", elapsed)
	}

	status := r.Status()
	if status.TotalConsumed != 5 {
		t.Errorf("consumed: got %d, want 5", status.TotalConsumed)
	}
}

func TestRateLimiter_BlocksWhenExhausted(t *testing.T) {
	r := NewRateLimiter(10.0)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := r.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	start := time.Now()
	if err := r.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("11th request waited only %v, want >= ~100ms", elapsed)
	}
}

func TestRateLimiter_RespectsCancellation(t *testing.T) {
	r := NewRateLimiter(1.0)
	if err := r.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := r.Wait(ctx); err == nil {
		t.Fatal("expected cancellation error while waiting for a token")
	}
}
