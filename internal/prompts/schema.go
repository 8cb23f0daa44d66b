package prompts

import "encoding/json"

// SummarySchema is the JSON schema for summarize/quiz output.
// The parser validates model output against the inner "schema" document;
// clients that support structured output can send the whole wrapper.
var SummarySchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "section_summary_" + SchemaVersion,
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Concise summary of the section",
				},
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{
								"type":      "string",
								"minLength": 1,
							},
							"answer": map[string]any{
								"type":      "string",
								"minLength": 1,
							},
							"choices": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
						"required":             []string{"question", "answer"},
						"additionalProperties": false,
					},
					"description": "Quiz questions generated from the section",
				},
			},
			"required":             []string{"summary", "questions"},
			"additionalProperties": false,
		},
	},
}

// GradingSchema is the JSON schema for grading output.
// Score bounds are deliberately absent: out-of-range scores are clamped by
// the parser rather than rejected, since small numeric drift is expected.
var GradingSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "answer_grade_" + SchemaVersion,
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score": map[string]any{
					"type":        "number",
					"description": "Grade between 0.0 and 1.0",
				},
				"feedback": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Short feedback for the student",
				},
			},
			"required":             []string{"score", "feedback"},
			"additionalProperties": false,
		},
	},
}

// SchemaJSON serializes a schema document for embedding in a prompt or for
// sending as a response_format payload.
func SchemaJSON(doc map[string]any) json.RawMessage {
	b, err := json.Marshal(doc)
	if err != nil {
		// Schema documents are package constants; marshal cannot fail on them.
		panic(err)
	}
	return b
}

// CoreSchemaJSON returns the inner schema document used for validation,
// without the response_format wrapper.
func CoreSchemaJSON(doc map[string]any) json.RawMessage {
	if wrapper, ok := doc["json_schema"].(map[string]any); ok {
		if inner, ok := wrapper["schema"]; ok {
			b, err := json.Marshal(inner)
			if err != nil {
				panic(err)
			}
			return b
		}
	}
	return SchemaJSON(doc)
}
