// Package parser turns free-text model completions into validated, typed
// results. Extraction (finding the JSON payload inside surrounding
// commentary) and validation (schema + field checks) are separate stages so
// each can be tested on its own.
package parser

import "strings"

// StripCodeFences removes a surrounding markdown code fence, if present.
// Returns the empty string when the content is not fenced.
func StripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop the opening fence line.
	lines = lines[1:]
	// Drop the closing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ExtractLastJSONObject finds the last balanced top-level JSON object inside
// raw text. Models sometimes restate intermediate reasoning as JSON before
// the final answer, so the last object wins. Returns false when no balanced
// object exists.
func ExtractLastJSONObject(raw string) (string, bool) {
	if fenced := StripCodeFences(raw); fenced != "" {
		raw = fenced
	}

	var (
		last     string
		found    bool
		depth    int
		start    = -1
		inString bool
		escaped  bool
	)

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					last = raw[start : i+1]
					found = true
					start = -1
				}
			}
		}
	}

	return last, found
}
