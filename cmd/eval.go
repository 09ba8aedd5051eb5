package cmd

import (
	"github.com/expirywatch/labelscan/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Label extraction evaluation tools",
		Long: `Evaluation tools for measuring how accurately the extraction pipeline reads
product names and expiry dates off label photos, scored against labeled
datasets.`,
	}

	// Add eval subcommands
	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())

	return cmd
}
