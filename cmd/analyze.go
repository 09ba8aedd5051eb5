package cmd

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/expirywatch/labelscan/internal/extraction"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		manualProduct string
		manualDate    string
		provider      string
		model         string
	)

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Extract product name and expiry date from a label photo",
		Args:  cobra.ExactArgs(1),
		Example: `  # Analyze a local photo with the default provider
  labelscan analyze label.jpg

  # Pin the extracted date, let the model fill in the product
  labelscan analyze label.jpg --date 2027-01-01

  # Use a local Ollama model
  labelscan analyze label.jpg --provider ollama --model llava`,
		RunE: func(cmd *cobra.Command, args []string) error {
			imageData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			service := extraction.NewService()
			result, err := service.Analyze(cmd.Context(), extraction.Request{
				ImageData:     imageData,
				MIMEType:      mime.TypeByExtension(filepath.Ext(args[0])),
				ManualProduct: manualProduct,
				ManualDate:    manualDate,
				Provider:      provider,
				Model:         model,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&manualProduct, "product", "", "Manual product name override")
	cmd.Flags().StringVar(&manualDate, "date", "", "Manual expiry date override")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name for the selected provider")

	return cmd
}
