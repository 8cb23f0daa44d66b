package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/echolearn/echolearn/internal/prompts"
)

// Compiled schemas are package state: the schema documents are constants, so
// compiling them once at init keeps the per-call path allocation-light.
var (
	summarySchema = mustCompile(prompts.CoreSchemaJSON(prompts.SummarySchema))
	gradingSchema = mustCompile(prompts.CoreSchemaJSON(prompts.GradingSchema))
)

func mustCompile(schemaRaw json.RawMessage) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaRaw)); err != nil {
		panic(fmt.Sprintf("load schema: %v", err))
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// ParseSummary extracts and validates a summarize/quiz payload from raw
// model output. sectionIndex is stamped onto the result.
func ParseSummary(raw string, sectionIndex int) (*prompts.SummaryResult, error) {
	doc, err := extractAndValidate(raw, summarySchema)
	if err != nil {
		return nil, err
	}

	var result prompts.SummaryResult
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, malformed(fmt.Sprintf("decode summary: %v", err), raw)
	}
	result.SectionIndex = sectionIndex

	if strings.TrimSpace(result.Summary) == "" {
		return nil, malformed("empty summary", raw)
	}
	for i, q := range result.QuizItems {
		if strings.TrimSpace(q.Question) == "" {
			return nil, malformed(fmt.Sprintf("question %d is empty", i), raw)
		}
		if strings.TrimSpace(q.ExpectedAnswer) == "" {
			return nil, malformed(fmt.Sprintf("question %d has no answer", i), raw)
		}
		if len(q.Choices) > 0 && !containsFold(q.Choices, q.ExpectedAnswer) {
			return nil, malformed(
				fmt.Sprintf("question %d: answer %q not among choices", i, q.ExpectedAnswer), raw)
		}
	}

	return &result, nil
}

// ParseGrading extracts and validates a grading payload from raw model
// output. Scores outside [0,1] are clamped, not rejected.
func ParseGrading(raw string) (*prompts.GradingResult, error) {
	doc, err := extractAndValidate(raw, gradingSchema)
	if err != nil {
		return nil, err
	}

	var result prompts.GradingResult
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, malformed(fmt.Sprintf("decode grading: %v", err), raw)
	}

	if result.Score < 0 {
		result.Score = 0
	} else if result.Score > 1 {
		result.Score = 1
	}
	if strings.TrimSpace(result.Feedback) == "" {
		return nil, malformed("empty feedback", raw)
	}

	return &result, nil
}

// extractAndValidate runs the two stages: structural extraction of the last
// balanced JSON object, then schema validation.
func extractAndValidate(raw string, schema *jsonschema.Schema) (json.RawMessage, error) {
	candidate, ok := ExtractLastJSONObject(raw)
	if !ok {
		return nil, malformed("no JSON object found", raw)
	}

	var doc any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, malformed(fmt.Sprintf("invalid JSON: %v", err), raw)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, malformed(fmt.Sprintf("schema violation: %v", err), raw)
	}

	return json.RawMessage(candidate), nil
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}
