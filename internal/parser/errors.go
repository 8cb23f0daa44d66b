package parser

import "fmt"

// maxExcerpt bounds how much raw model output a MalformedError carries.
const maxExcerpt = 240

// MalformedError reports model output that could not be interpreted as the
// expected JSON payload. It keeps an excerpt of the raw text for diagnosis
// and marks the failure as eligible for one corrective re-prompt.
type MalformedError struct {
	Reason  string
	Excerpt string
}

func (e *MalformedError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("malformed model output: %s", e.Reason)
	}
	return fmt.Sprintf("malformed model output: %s (got: %q)", e.Reason, e.Excerpt)
}

func malformed(reason, raw string) *MalformedError {
	excerpt := raw
	if len(excerpt) > maxExcerpt {
		excerpt = excerpt[:maxExcerpt] + "..."
	}
	return &MalformedError{Reason: reason, Excerpt: excerpt}
}
