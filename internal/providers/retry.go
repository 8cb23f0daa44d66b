package providers

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/avast/retry-go/v4"
)

// callFailure classifies a failed completion attempt so the retry policy and
// the result taxonomy agree on what happened.
type callFailure struct {
	errorType string
	retryable bool
	cause     error
}

func (f *callFailure) Error() string { return f.cause.Error() }
func (f *callFailure) Unwrap() error { return f.cause }

func timeoutFailure(cause error) *callFailure {
	return &callFailure{errorType: ErrorTypeTimeout, retryable: true, cause: cause}
}

func transportFailure(cause error, retryable bool) *callFailure {
	return &callFailure{errorType: ErrorTypeTransport, retryable: retryable, cause: cause}
}

// classifyNetError maps low-level transport errors onto the taxonomy.
// Deadline and net timeouts retry; a cancelled parent context does not.
func classifyNetError(err error) *callFailure {
	if errors.Is(err, context.Canceled) {
		return &callFailure{errorType: ErrorTypeTransport, retryable: false, cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutFailure(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutFailure(err)
	}
	return transportFailure(err, true)
}

// retryableStatus reports whether an HTTP status is worth retrying:
// rate limiting and server errors, nothing else.
func retryableStatus(status int) bool {
	return status == 429 || status >= 500
}

// failureType extracts the taxonomy label from an error chain, defaulting
// to transport.
func failureType(err error) string {
	var f *callFailure
	if errors.As(err, &f) {
		return f.errorType
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTimeout
	}
	return ErrorTypeTransport
}

// runWithRetry executes attempt up to maxRetries+1 times with exponential
// backoff and jitter, retrying only failures classified as transient. The
// identical request is reissued on each attempt.
func runWithRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, attempt func(ctx context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return retry.Do(
		func() error { return attempt(ctx) },
		retry.Context(ctx),
		retry.Attempts(uint(maxRetries)+1),
		retry.Delay(baseDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(baseDelay/2),
		retry.MaxDelay(10*time.Second),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var f *callFailure
			return errors.As(err, &f) && f.retryable
		}),
	)
}
