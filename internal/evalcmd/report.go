package evalcmd

import (
	"fmt"
	"sort"

	"github.com/expirywatch/labelscan/internal/eval/results"
	"github.com/spf13/cobra"
)

// NewReportCmd builds the "eval report" command.
func NewReportCmd() *cobra.Command {
	var worst int

	cmd := &cobra.Command{
		Use:   "report <results.yaml>",
		Short: "Summarize a saved evaluation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(args[0], worst)
		},
	}

	cmd.Flags().IntVar(&worst, "worst", 10, "Number of lowest-scoring records to list")

	return cmd
}

func executeReport(path string, worst int) error {
	spec, err := results.LoadFromYAML(path)
	if err != nil {
		return err
	}

	fmt.Printf("Evaluation: provider=%s model=%s dataset=%s records=%d (%s)\n\n",
		spec.Config.Provider, spec.Config.Model, spec.Config.DatasetPath,
		spec.Config.SampleSize, spec.Config.Timestamp)

	var sum float64
	failures := 0
	scored := make([]results.EvalResult, 0, len(spec.Results))
	for _, r := range spec.Results {
		if r.Error != "" {
			failures++
			continue
		}
		sum += r.OverallScore
		scored = append(scored, r)
	}

	if len(scored) > 0 {
		fmt.Printf("Average overall score: %.2f over %d records (%d failed)\n\n", sum/float64(len(scored)), len(scored), failures)
	} else {
		fmt.Printf("No scored records (%d failed)\n", failures)
		return nil
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].OverallScore < scored[j].OverallScore
	})
	if worst > len(scored) {
		worst = len(scored)
	}

	fmt.Printf("Lowest-scoring records:\n")
	for _, r := range scored[:worst] {
		fmt.Printf("  %-20s %.2f  product %q -> %q  expiry %q -> %q\n",
			r.Identifier, r.OverallScore,
			r.ExpectedProduct, r.ExtractedProduct,
			r.ExpectedExpiry, r.ExtractedExpiry)
	}

	return nil
}
