package evalcmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/expirywatch/labelscan/internal/eval/dataset"
	"github.com/expirywatch/labelscan/internal/eval/metrics"
	"github.com/expirywatch/labelscan/internal/eval/results"
	"github.com/expirywatch/labelscan/internal/extraction"
	"github.com/spf13/cobra"
)

// NewRunCmd builds the "eval run" command.
func NewRunCmd() *cobra.Command {
	var (
		datasetPath string
		imageDir    string
		provider    string
		model       string
		outputDir   string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run extraction accuracy evaluation against a labeled dataset",
		Long: `Runs the label extraction pipeline over every record of a labeled dataset
(Parquet or JSONL) and scores the extracted product names and expiry dates
against the reference values. Results are written as a YAML report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd.Context(), datasetPath, imageDir, provider, model, outputDir, concurrency)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to dataset file (.parquet or .jsonl)")
	cmd.Flags().StringVar(&imageDir, "images", "eval-images", "Directory holding (or receiving) dataset images")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name for the selected provider")
	cmd.Flags().StringVar(&outputDir, "output", "evals", "Directory for YAML reports")
	cmd.Flags().IntVar(&concurrency, "concurrency", 3, "Number of concurrent extraction calls")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeRun(ctx context.Context, datasetPath, imageDir, provider, model, outputDir string, concurrency int) error {
	if provider == "" {
		provider = os.Getenv("LABELSCAN_PROVIDER")
	}
	if provider == "" {
		provider = "gemini"
	}
	slog.Info("Starting evaluation run", "dataset", datasetPath, "provider", provider, "model", model)

	records, err := dataset.NewLoader(datasetPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "records", len(records))

	// Fetch any URL-based images up front
	downloaded, err := dataset.NewDownloader().DownloadAll(records, imageDir)
	if err != nil {
		return fmt.Errorf("failed to download dataset images: %w", err)
	}
	if downloaded > 0 {
		slog.Info("Downloaded dataset images", "count", downloaded)
	}

	service := extraction.NewService()

	slog.Info("Processing records", "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan metrics.EvaluationResult, len(records))

	for i, record := range records {
		wg.Add(1)
		go func(idx int, record dataset.LabelRecord) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Processing record", "id", record.Identifier, "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
			resultsChan <- processRecord(ctx, record, service, imageDir, provider, model)
		}(i, record)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var evalResults []metrics.EvaluationResult
	for result := range resultsChan {
		evalResults = append(evalResults, result)
	}
	sort.Slice(evalResults, func(i, j int) bool {
		return evalResults[i].Identifier < evalResults[j].Identifier
	})

	summary := metrics.Aggregate(evalResults)

	path, err := results.SaveToYAML(provider, model, datasetPath, outputDir, evalResults)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	printSummary(summary)
	fmt.Printf("\nResults saved to: %s\n", path)
	fmt.Printf("\nGenerate detailed report with:\n")
	fmt.Printf("  labelscan eval report %s\n", path)

	return nil
}

func processRecord(ctx context.Context, record dataset.LabelRecord, service *extraction.Service, imageDir, provider, model string) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		Identifier:      record.Identifier,
		ExpectedProduct: record.Product,
		ExpectedExpiry:  extraction.NormalizeDate(record.ExpiryDate),
	}

	imageData, err := record.ImageData(imageDir)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	extracted, err := service.Analyze(ctx, extraction.Request{
		ImageData: imageData,
		MIMEType:  http.DetectContentType(imageData),
		Provider:  provider,
		Model:     model,
	})
	result.ProcessingTime = time.Since(start)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.ExtractedProduct = extracted.Product
	result.ExtractedExpiry = extracted.ExpiryDate
	result.Comparison = metrics.CompareLabelFields(
		result.ExpectedProduct,
		result.ExpectedExpiry,
		result.ExtractedProduct,
		result.ExtractedExpiry,
	)
	return result
}

func printSummary(summary metrics.AggregateResults) {
	fmt.Printf("\nEvaluation summary\n")
	fmt.Printf("  Records:   %d (%d ok, %d failed)\n", summary.TotalRecords, summary.SuccessCount, summary.FailureCount)
	fmt.Printf("  Overall:   %.2f\n", summary.OverallAccuracy)
	fmt.Printf("  Product:   %.2f avg (%d exact, %d fuzzy, %d missing, %d wrong)\n",
		summary.ProductAccuracy.AverageScore,
		summary.ProductAccuracy.ExactMatches,
		summary.ProductAccuracy.FuzzyMatches,
		summary.ProductAccuracy.MissingFields,
		summary.ProductAccuracy.NoMatches)
	fmt.Printf("  Expiry:    %.2f avg (%d exact, %d missing, %d wrong)\n",
		summary.DateAccuracy.AverageScore,
		summary.DateAccuracy.ExactMatches,
		summary.DateAccuracy.MissingFields,
		summary.DateAccuracy.NoMatches)
	fmt.Printf("  Avg time:  %s\n", summary.AverageProcessingTime.Round(time.Millisecond))
}
