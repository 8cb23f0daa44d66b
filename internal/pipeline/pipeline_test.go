package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/echolearn/echolearn/internal/prompts"
	"github.com/echolearn/echolearn/internal/providers"
)

const validSummaryJSON = `{"summary": "Key ideas of the section.", "questions": [
  {"question": "What is covered?", "answer": "The key ideas"}
]}`

func testOptions() Options {
	return Options{
		TargetSectionChars: 1000,
		Concurrency:        4,
		RequestsPerSecond:  1000,
	}
}

func TestSummarizeAndQuiz_SingleSection(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = validSummaryJSON

	o := New(mock, testOptions(), nil)
	report, err := o.SummarizeAndQuiz(context.Background(), "Paragraph one.\n\nParagraph two.")
	if err != nil {
		t.Fatalf("SummarizeAndQuiz() error = %v", err)
	}
	if report.SectionCount != 1 {
		t.Errorf("section count: got %d, want 1", report.SectionCount)
	}
	if len(report.Results) != 1 || len(report.Failures) != 0 {
		t.Fatalf("got %d results, %d failures", len(report.Results), len(report.Failures))
	}
	if report.Results[0].Summary != "Key ideas of the section." {
		t.Errorf("summary: got %q", report.Results[0].Summary)
	}
	if len(report.Results[0].QuizItems) != 1 {
		t.Errorf("quiz items: got %d", len(report.Results[0].QuizItems))
	}
}

func TestSummarizeAndQuiz_EmptyInput(t *testing.T) {
	o := New(providers.NewMockClient(), testOptions(), nil)
	report, err := o.SummarizeAndQuiz(context.Background(), "")
	if err != nil {
		t.Fatalf("SummarizeAndQuiz() error = %v", err)
	}
	if report.SectionCount != 0 || len(report.Results) != 0 {
		t.Errorf("got %+v, want empty report", report)
	}
}

// threeSectionText yields exactly three sections at target 40: each
// paragraph is larger than the target, so each stands alone.
func threeSectionText() string {
	return strings.Join([]string{
		"Alpha section content with enough words to stand alone.",
		"UNIQUE-BETA section content with enough words to stand alone.",
		"Gamma section content with enough words to stand alone.",
	}, "\n\n")
}

func TestSummarizeAndQuiz_PartialFailureIsolated(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = validSummaryJSON
	mock.FailPrompts = map[string]string{
		"UNIQUE-BETA": "deadline exceeded waiting for inference endpoint",
	}

	opts := testOptions()
	opts.TargetSectionChars = 40
	o := New(mock, opts, nil)

	report, err := o.SummarizeAndQuiz(context.Background(), threeSectionText())
	if err != nil {
		t.Fatalf("SummarizeAndQuiz() error = %v", err)
	}
	if report.SectionCount != 3 {
		t.Fatalf("section count: got %d, want 3", report.SectionCount)
	}
	if len(report.Results) != 2 {
		t.Errorf("results: got %d, want 2", len(report.Results))
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures: got %d, want 1", len(report.Failures))
	}
	if report.Failures[0].SectionIndex != 1 {
		t.Errorf("failed section: got %d, want 1", report.Failures[0].SectionIndex)
	}
	if report.Failures[0].Stage != StageModelCall {
		t.Errorf("failure stage: got %q", report.Failures[0].Stage)
	}

	// Surviving results stay ordered by section.
	if report.Results[0].SectionIndex != 0 || report.Results[1].SectionIndex != 2 {
		t.Errorf("result order: got %d, %d", report.Results[0].SectionIndex, report.Results[1].SectionIndex)
	}
}

func TestSummarizeAndQuiz_MalformedRepairedOnce(t *testing.T) {
	mock := providers.NewMockClient()
	mock.Responses = []string{
		"Sorry, here is prose instead of JSON.",
		validSummaryJSON,
	}

	o := New(mock, testOptions(), nil)
	report, err := o.SummarizeAndQuiz(context.Background(), "One short paragraph.")
	if err != nil {
		t.Fatalf("SummarizeAndQuiz() error = %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1 after repair", len(report.Results))
	}
	if got := mock.RequestCount(); got != 2 {
		t.Errorf("request count: got %d, want 2 (original + one repair)", got)
	}
}

func TestSummarizeAndQuiz_MalformedTwiceRecordsFailure(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "still not json, no matter how nicely you ask"

	o := New(mock, testOptions(), nil)
	report, err := o.SummarizeAndQuiz(context.Background(), "One short paragraph.")
	if err != nil {
		t.Fatalf("SummarizeAndQuiz() error = %v", err)
	}
	if len(report.Results) != 0 || len(report.Failures) != 1 {
		t.Fatalf("got %d results, %d failures", len(report.Results), len(report.Failures))
	}
	if report.Failures[0].Stage != StageParse {
		t.Errorf("stage: got %q, want %q", report.Failures[0].Stage, StageParse)
	}
	if got := mock.RequestCount(); got != 2 {
		t.Errorf("request count: got %d, want 2 (exactly one corrective re-prompt)", got)
	}
}

func TestGrade_Success(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"score": 0.9, "feedback": "Correct, in words."}`

	o := New(mock, testOptions(), nil)
	result, err := o.Grade(context.Background(), prompts.GradingRequest{
		Question:       "What is 2+2?",
		ExpectedAnswer: "4",
		StudentAnswer:  "four",
	})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if result.Score != 0.9 || result.Feedback != "Correct, in words." {
		t.Errorf("got %+v", result)
	}
}

func TestGrade_MalformedTwiceFails(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "I refuse to emit JSON."

	o := New(mock, testOptions(), nil)
	_, err := o.Grade(context.Background(), prompts.GradingRequest{
		Question:       "Q",
		ExpectedAnswer: "A",
		StudentAnswer:  "B",
	})
	if !errors.Is(err, ErrGradingFailed) {
		t.Fatalf("want ErrGradingFailed, got %v", err)
	}
	if got := mock.RequestCount(); got != 2 {
		t.Errorf("request count: got %d, want 2", got)
	}
}

func TestGrade_TransportFailureNoDefaultScore(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ShouldFail = true

	o := New(mock, testOptions(), nil)
	result, err := o.Grade(context.Background(), prompts.GradingRequest{
		Question:       "Q",
		ExpectedAnswer: "A",
		StudentAnswer:  "B",
	})
	if !errors.Is(err, ErrGradingFailed) {
		t.Fatalf("want ErrGradingFailed, got %v", err)
	}
	if result != nil {
		t.Errorf("no result should be fabricated, got %+v", result)
	}
}

func TestGrade_MissingInputs(t *testing.T) {
	o := New(providers.NewMockClient(), testOptions(), nil)
	if _, err := o.Grade(context.Background(), prompts.GradingRequest{}); !errors.Is(err, ErrGradingFailed) {
		t.Errorf("want ErrGradingFailed for empty request, got %v", err)
	}
}

func TestAsk_PlainAnswer(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "Entropy measures disorder."

	o := New(mock, testOptions(), nil)
	answer, err := o.Ask(context.Background(), "What is entropy?", "Thermo notes.")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "Entropy measures disorder." {
		t.Errorf("got %q", answer)
	}
}
