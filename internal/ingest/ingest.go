// Package ingest loads study material from files into plain text the
// splitter can work with. PDFs are extracted with pdfcpu; everything else
// is treated as text.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FromFile reads study text from path, extracting PDFs and passing
// text-like files through with normalized line endings.
func FromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extractPDFText(path)
		if err != nil {
			return "", fmt.Errorf("pdf extraction failed: %w", err)
		}
		return text, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return NormalizeText(string(data)), nil
	}
}

// NormalizeText canonicalizes line endings and collapses runs of blank
// lines so paragraph boundaries stay detectable without inflating sections.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Collapse 3+ newlines to a single paragraph break.
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}
