package main

import (
	"github.com/spf13/cobra"

	"github.com/echolearn/echolearn/internal/api"
	"github.com/echolearn/echolearn/internal/prompts"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List prompt templates and their fingerprints",
	Long: `Show each prompt template's task, schema version, template variables,
and content hash. Useful for confirming which prompt revision produced
a batch of results.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Output(prompts.Fingerprints())
	},
}
