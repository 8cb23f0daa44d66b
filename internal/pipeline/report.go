package pipeline

import "github.com/echolearn/echolearn/internal/prompts"

// Stages recorded on a SectionFailure.
const (
	StageModelCall = "model_call"
	StageParse     = "parse"
)

// SectionFailure records why one section produced no result. Other sections
// are unaffected; partial success is an expected outcome.
type SectionFailure struct {
	SectionIndex int    `json:"section_index"`
	Stage        string `json:"stage"`
	ErrorType    string `json:"error_type,omitempty"`
	Reason       string `json:"reason"`
}

// Report aggregates a full summarize-and-quiz run: every section either
// contributed a result or a recorded failure.
type Report struct {
	SectionCount int                     `json:"section_count"`
	Results      []prompts.SummaryResult `json:"results"`
	Failures     []SectionFailure        `json:"failures,omitempty"`
}
