// Package splitter partitions raw study text into ordered sections suitable
// for independent summarization.
//
// Splitting strategy:
//  1. Find paragraph boundaries (two or more consecutive newlines, or a
//     heading-like line such as a markdown "#" header)
//  2. Greedily accumulate paragraphs into a section until the next paragraph
//     would push it past the target size
//  3. A single paragraph larger than the target becomes its own oversized
//     section; paragraphs are never cut mid-sentence
package splitter

import (
	"strings"
	"unicode"
)

// DefaultTargetChars is the section size used when none is configured.
const DefaultTargetChars = 800

// Section is one contiguous slice of the input text.
// Start and End are byte offsets into the original text; the ranges of all
// sections tile the input without gaps or overlaps.
type Section struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// paragraph is an internal span before sections are assembled.
// Start/End include the boundary whitespace that follows the paragraph, so
// that spans tile the input exactly.
type paragraph struct {
	start int
	end   int
}

// Split divides text into sections of roughly targetChars characters.
// Empty input returns nil; input shorter than targetChars returns a single
// section covering the whole text.
func Split(text string, targetChars int) []Section {
	if targetChars <= 0 {
		targetChars = DefaultTargetChars
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	paras := findParagraphs(text)

	var sections []Section
	secStart := 0
	secLen := 0

	flush := func(end int) {
		body := strings.TrimSpace(text[secStart:end])
		if body == "" {
			// Whitespace-only span; fold it into the previous section's range.
			if n := len(sections); n > 0 {
				sections[n-1].End = end
			}
			secStart = end
			secLen = 0
			return
		}
		sections = append(sections, Section{
			Index: len(sections),
			Text:  body,
			Start: secStart,
			End:   end,
		})
		secStart = end
		secLen = 0
	}

	for _, p := range paras {
		plen := len(strings.TrimSpace(text[p.start:p.end]))
		if secLen > 0 && secLen+plen > targetChars {
			flush(p.start)
		}
		secLen += plen
		// An oversized paragraph stands alone rather than being cut.
		if secLen > targetChars {
			flush(p.end)
		}
	}
	if secStart < len(text) {
		flush(len(text))
	}

	return sections
}

// findParagraphs locates paragraph spans. A paragraph ends at a run of two or
// more newlines, or just before a heading-like line. Trailing boundary
// whitespace belongs to the preceding span so the spans tile the text.
func findParagraphs(text string) []paragraph {
	var paras []paragraph
	start := 0

	lines := splitLinesKeepOffsets(text)
	lastBlank := false
	for _, ln := range lines {
		blank := strings.TrimSpace(text[ln.start:ln.end]) == ""
		switch {
		case blank:
			lastBlank = true
		case lastBlank, isHeadingLine(text[ln.start:ln.end]):
			if ln.start > start {
				paras = append(paras, paragraph{start: start, end: ln.start})
				start = ln.start
			}
			lastBlank = false
		default:
			lastBlank = false
		}
	}
	if start < len(text) {
		paras = append(paras, paragraph{start: start, end: len(text)})
	}
	return paras
}

type lineSpan struct {
	start int
	end   int // exclusive, not including the newline
}

func splitLinesKeepOffsets(text string) []lineSpan {
	var lines []lineSpan
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, lineSpan{start: start, end: i})
			start = i + 1
		}
	}
	if start <= len(text) {
		lines = append(lines, lineSpan{start: start, end: len(text)})
	}
	return lines
}

// isHeadingLine reports whether a line looks like a section heading:
// a markdown header, or a short line with no terminal punctuation.
func isHeadingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if len(trimmed) > 72 {
		return false
	}
	last := rune(trimmed[len(trimmed)-1])
	if last == '.' || last == '!' || last == '?' || last == ',' || last == ';' || last == ':' {
		return false
	}
	// Headings are mostly title-cased or upper-cased short lines.
	words := strings.Fields(trimmed)
	if len(words) == 0 || len(words) > 8 {
		return false
	}
	capitalized := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalized++
		}
	}
	return capitalized == len(words)
}
