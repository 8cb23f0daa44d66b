package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/echolearn/echolearn/internal/api"
	"github.com/echolearn/echolearn/internal/ingest"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize study material and generate quiz questions",
	Long: `Split study material into sections, then produce a summary and quiz
questions for each section.

Reads from the given file (plain text, markdown, or PDF) or from stdin
when no file is given.

Examples:
  echolearn summarize notes.txt
  echolearn summarize chapter3.pdf -o json
  cat notes.md | echolearn summarize`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		var text string
		if len(args) == 1 {
			var err error
			text, err = ingest.FromFile(args[0])
			if err != nil {
				return err
			}
		} else {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = ingest.NormalizeText(string(raw))
		}

		orch, err := buildOrchestrator(logger)
		if err != nil {
			return err
		}

		report, err := orch.SummarizeAndQuiz(cmd.Context(), text)
		if err != nil {
			return err
		}

		return api.Output(report)
	},
}
