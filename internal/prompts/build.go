package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

const summarizeTemplate = `You are a study assistant. Read the following section of educational text, then produce a concise summary and quiz questions that test understanding of it.

Section:
{{.Section}}

Respond with a single JSON object and nothing else. The object must match this schema exactly:
{{.Schema}}

Rules:
- "summary" captures the key ideas of the section in a few sentences.
- Generate 2-4 "questions", each with the expected "answer".
- If a question is multiple-choice, list the options in "choices" and make sure "answer" is one of them.
- Do not wrap the JSON in markdown fences or add commentary.`

const gradeTemplate = `You are grading a student's free-text answer.

Question:
{{.Question}}

Expected answer:
{{.ExpectedAnswer}}

Student answer:
{{.StudentAnswer}}

Score the student answer against the expected answer. Accept paraphrases and equivalent formulations; penalize missing or wrong substance.

Respond with a single JSON object and nothing else, matching this schema exactly:
{{.Schema}}

"score" is between 0.0 (completely wrong) and 1.0 (fully correct). "feedback" is one or two sentences for the student. Do not wrap the JSON in markdown fences or add commentary.`

const askTemplate = `You are a helpful study assistant. Use the following textbook context to answer the question concisely.

Context:
{{.Context}}

Question:
{{.Question}}

Answer:`

const repairTemplate = `Return ONLY valid JSON (no markdown, no commentary) that strictly conforms to this schema.

Schema:
{{.Schema}}

Your previous output:
{{.LastOutput}}

Validation issue:
{{.Issue}}`

var templates = map[Task]*template.Template{
	TaskSummarize: template.Must(template.New(string(TaskSummarize)).Parse(summarizeTemplate)),
	TaskGrade:     template.Must(template.New(string(TaskGrade)).Parse(gradeTemplate)),
	TaskAsk:       template.Must(template.New(string(TaskAsk)).Parse(askTemplate)),
}

var repairTmpl = template.Must(template.New("repair").Parse(repairTemplate))

// maxRepairExcerpt bounds how much of the previous output is echoed back in
// a repair prompt.
const maxRepairExcerpt = 12000

// BuildSummarize renders the summarize+quiz prompt for one section.
func BuildSummarize(sectionText string) string {
	return render(TaskSummarize, map[string]any{
		"Section": sectionText,
		"Schema":  string(CoreSchemaJSON(SummarySchema)),
	})
}

// BuildGrade renders the grading prompt for a student answer.
func BuildGrade(req GradingRequest) string {
	return render(TaskGrade, map[string]any{
		"Question":       req.Question,
		"ExpectedAnswer": req.ExpectedAnswer,
		"StudentAnswer":  req.StudentAnswer,
		"Schema":         string(CoreSchemaJSON(GradingSchema)),
	})
}

// BuildAsk renders the free-question prompt over a study context.
func BuildAsk(question, context string) string {
	return render(TaskAsk, map[string]any{
		"Question": question,
		"Context":  context,
	})
}

// BuildRepair renders the one-shot corrective prompt sent after the model
// produced output that failed schema validation.
func BuildRepair(schemaDoc map[string]any, lastOutput string, issue error) string {
	lastOutput = strings.TrimSpace(lastOutput)
	if len(lastOutput) > maxRepairExcerpt {
		lastOutput = lastOutput[:maxRepairExcerpt] + "\n...[truncated]"
	}

	var sb strings.Builder
	err := repairTmpl.Execute(&sb, map[string]any{
		"Schema":     string(CoreSchemaJSON(schemaDoc)),
		"LastOutput": lastOutput,
		"Issue":      fmt.Sprintf("%v", issue),
	})
	if err != nil {
		panic(err)
	}
	return sb.String()
}

func render(task Task, data map[string]any) string {
	tmpl, ok := templates[task]
	if !ok {
		panic(fmt.Sprintf("unknown prompt task: %s", task))
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		// Templates are package constants rendered with map data; execution
		// cannot fail at runtime.
		panic(err)
	}
	return sb.String()
}
