package main

import (
	"github.com/spf13/cobra"

	"github.com/echolearn/echolearn/internal/api"
	"github.com/echolearn/echolearn/internal/prompts"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <question> <expected-answer> <student-answer>",
	Short: "Grade a free-text answer against the expected answer",
	Long: `Score a student's free-text answer from 0.0 to 1.0 with short feedback.

Examples:
  echolearn grade "What is Ohm's law?" "V = IR" "voltage equals current times resistance"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := buildOrchestrator(newLogger())
		if err != nil {
			return err
		}

		result, err := orch.Grade(cmd.Context(), prompts.GradingRequest{
			Question:       args[0],
			ExpectedAnswer: args[1],
			StudentAnswer:  args[2],
		})
		if err != nil {
			return err
		}

		return api.Output(result)
	},
}
