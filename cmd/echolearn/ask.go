package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echolearn/echolearn/internal/ingest"
)

var askContextFile string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the study material",
	Long: `Answer a free-form question. With --context, the answer is grounded
in the given study material; without it, the model answers on its own.

Examples:
  echolearn ask "Why does entropy increase?"
  echolearn ask --context notes.txt "What did the second section say about osmosis?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var studyContext string
		if askContextFile != "" {
			var err error
			studyContext, err = ingest.FromFile(askContextFile)
			if err != nil {
				return err
			}
		}

		orch, err := buildOrchestrator(newLogger())
		if err != nil {
			return err
		}

		answer, err := orch.Ask(cmd.Context(), args[0], studyContext)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askContextFile, "context", "", "file with study material to ground the answer in")
}
