package main

import (
	"github.com/spf13/cobra"

	"github.com/echolearn/echolearn/internal/api"
	"github.com/echolearn/echolearn/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "echolearn",
	Short: "Study assistant that summarizes, quizzes, and grades with a local LLM",
	Long: `EchoLearn turns study material into an interactive review session
using a locally hosted language model.

The pipeline includes:
  - Section splitting of raw study text
  - Per-section summaries with generated quiz questions
  - Free-text answer grading against expected answers
  - Ad-hoc questions answered from the study context`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.echolearn/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(promptsCmd)
}
