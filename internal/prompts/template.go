package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
)

// variablePattern matches Go template variable references like {{.VarName}}
// or {{ .VarName }}.
var variablePattern = regexp.MustCompile(`\{\{\s*\.([a-zA-Z_][a-zA-Z0-9_.]*)\s*\}\}`)

// ExtractVariables extracts template variable names from a template string.
// For example, "Hello {{.Name}}, score {{.Score}}" returns ["Name", "Score"].
func ExtractVariables(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var vars []string

	for _, match := range matches {
		if len(match) > 1 && !seen[match[1]] {
			seen[match[1]] = true
			vars = append(vars, match[1])
		}
	}

	sort.Strings(vars)
	return vars
}

// HashText returns a SHA256 hash of the text for change detection.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// Fingerprint describes one registered template for traceability: which
// tasks exist, which variables they take, and a hash of the exact text in
// use so prompt revisions are visible in logs and CLI output.
type Fingerprint struct {
	Task          Task     `json:"task"`
	SchemaVersion string   `json:"schema_version"`
	Variables     []string `json:"variables"`
	Hash          string   `json:"hash"`
}

// Fingerprints lists fingerprints for all task templates, ordered by task.
func Fingerprints() []Fingerprint {
	sources := map[Task]string{
		TaskSummarize: summarizeTemplate,
		TaskGrade:     gradeTemplate,
		TaskAsk:       askTemplate,
	}

	tasks := make([]Task, 0, len(sources))
	for task := range sources {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i] < tasks[j] })

	fps := make([]Fingerprint, 0, len(tasks))
	for _, task := range tasks {
		text := sources[task]
		fps = append(fps, Fingerprint{
			Task:          task,
			SchemaVersion: SchemaVersion,
			Variables:     ExtractVariables(text),
			Hash:          HashText(text),
		})
	}
	return fps
}
