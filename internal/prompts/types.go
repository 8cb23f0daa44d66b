// Package prompts renders model-ready prompts for the pipeline tasks and
// owns the JSON output schemas those prompts instruct the model to follow.
//
// The schema documents live next to the prompt templates so the builder and
// the response parser can never drift apart: both reference the same
// versioned constants.
package prompts

// SchemaVersion identifies the current output-schema revision. Bump it when
// field names or required fields change in any schema document.
const SchemaVersion = "v1"

// Task identifies a prompt template.
type Task string

const (
	TaskSummarize Task = "summarize"
	TaskGrade     Task = "grade"
	TaskAsk       Task = "ask"
)

// QuizItem is one generated question with its expected answer.
// Choices is present only for multiple-choice questions, in which case the
// expected answer must be one of the choices.
type QuizItem struct {
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"answer"`
	Choices        []string `json:"choices,omitempty"`
}

// SummaryResult is the parsed model output for one section.
type SummaryResult struct {
	SectionIndex int        `json:"section_index"`
	Summary      string     `json:"summary"`
	QuizItems    []QuizItem `json:"questions"`
}

// GradingRequest carries a grading call's inputs.
type GradingRequest struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
	StudentAnswer  string `json:"student_answer"`
}

// GradingResult is the parsed model output for a grading call.
// Score is always within [0,1] after parsing.
type GradingResult struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}
