package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labelscan",
		Short: "Product label scanner with LLM-powered expiry extraction",
		Long: `Labelscan extracts product names and expiry dates from label photos using
vision-capable LLMs.

It serves a web interface where images can be uploaded directly or relayed
from a paired phone, and ships a CLI for one-shot extraction and for
evaluating extraction accuracy against labeled datasets.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
