package splitter

import (
	"strings"
	"testing"
)

func TestSplit_Empty(t *testing.T) {
	if got := Split("", 800); got != nil {
		t.Errorf("Split(empty): got %v, want nil", got)
	}
	if got := Split("   \n\n  ", 800); got != nil {
		t.Errorf("Split(whitespace): got %v, want nil", got)
	}
}

func TestSplit_ShortTextSingleSection(t *testing.T) {
	text := "Paragraph one.\n\nParagraph two."
	sections := Split(text, 1000)
	if len(sections) != 1 {
		t.Fatalf("Split(short): got %d sections, want 1", len(sections))
	}
	if sections[0].Text != text {
		t.Errorf("text: got %q, want %q", sections[0].Text, text)
	}
	if sections[0].Start != 0 || sections[0].End != len(text) {
		t.Errorf("range: got [%d,%d), want [0,%d)", sections[0].Start, sections[0].End, len(text))
	}
}

func TestSplit_RangesTileInput(t *testing.T) {
	text := strings.Repeat("First paragraph with some content here.\n\n", 10) +
		"## A Heading\n\n" +
		strings.Repeat("Second batch of paragraph content goes here.\n\n", 10)

	sections := Split(text, 200)
	if len(sections) < 2 {
		t.Fatalf("got %d sections, want >= 2", len(sections))
	}

	if sections[0].Start != 0 {
		t.Errorf("first section starts at %d, want 0", sections[0].Start)
	}
	if sections[len(sections)-1].End != len(text) {
		t.Errorf("last section ends at %d, want %d", sections[len(sections)-1].End, len(text))
	}
	for i := 1; i < len(sections); i++ {
		if sections[i].Start != sections[i-1].End {
			t.Errorf("gap/overlap between section %d and %d: %d != %d",
				i-1, i, sections[i-1].End, sections[i].Start)
		}
		if sections[i].Index != i {
			t.Errorf("section %d has index %d", i, sections[i].Index)
		}
	}

	// Concatenating the ranges reconstructs the input exactly.
	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString(text[s.Start:s.End])
	}
	if sb.String() != text {
		t.Error("concatenated ranges do not reconstruct the input")
	}
}

func TestSplit_NoEmptySections(t *testing.T) {
	text := "Alpha.\n\n\n\n\nBeta.\n\n\n"
	for _, s := range Split(text, 4) {
		if strings.TrimSpace(s.Text) == "" {
			t.Errorf("section %d is empty", s.Index)
		}
	}
}

func TestSplit_OversizedParagraphStandsAlone(t *testing.T) {
	small := "A small one."
	big := "This single paragraph is far larger than the target size and keeps going. " +
		strings.Repeat("More words to inflate the paragraph well past the limit. ", 5)
	big = strings.TrimSpace(big)
	text := small + "\n\n" + big + "\n\n" + small

	sections := Split(text, 50)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	if sections[1].Text != big {
		t.Errorf("oversized paragraph was split: got %q", sections[1].Text)
	}
}

func TestSplit_GreedyAccumulation(t *testing.T) {
	para := "Twenty characters!!"
	text := strings.Join([]string{para, para, para, para}, "\n\n")

	sections := Split(text, 45)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	for i, s := range sections {
		if !strings.Contains(s.Text, para) {
			t.Errorf("section %d missing paragraph text", i)
		}
	}
}

func TestSplit_HeadingStartsNewParagraph(t *testing.T) {
	text := "Intro sentence that sets things up nicely, with plenty of words to fill space.\n" +
		"# Chapter One\n" +
		"Body of chapter one follows the heading directly on the next line here."

	sections := Split(text, 80)
	if len(sections) < 2 {
		t.Fatalf("got %d sections, want >= 2: heading should be a boundary", len(sections))
	}
	if !strings.HasPrefix(sections[1].Text, "# Chapter One") {
		t.Errorf("second section should start at the heading, got %q", sections[1].Text)
	}
}

func TestSplit_DefaultTarget(t *testing.T) {
	text := "Hello world."
	sections := Split(text, 0)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
}
