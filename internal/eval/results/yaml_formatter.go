package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/expirywatch/labelscan/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier       string  `yaml:"identifier"`
	ExpectedProduct  string  `yaml:"expectedproduct"`
	ExpectedExpiry   string  `yaml:"expectedexpiry"`
	ExtractedProduct string  `yaml:"extractedproduct"`
	ExtractedExpiry  string  `yaml:"extractedexpiry"`
	ProductScore     float64 `yaml:"productscore"`
	DateScore        float64 `yaml:"datescore"`
	OverallScore     float64 `yaml:"overallscore"`
	Error            string  `yaml:"error,omitempty"`
}

// EvalSpec represents the complete evaluation report
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves evaluation results to a timestamped YAML file under
// outputDir, returning the file path.
func SaveToYAML(provider, model, datasetPath, outputDir string, results []metrics.EvaluationResult) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			Provider:    provider,
			Model:       model,
			DatasetPath: datasetPath,
			SampleSize:  len(results),
			Timestamp:   timestamp,
		},
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		result := EvalResult{
			Identifier:       r.Identifier,
			ExpectedProduct:  r.ExpectedProduct,
			ExpectedExpiry:   r.ExpectedExpiry,
			ExtractedProduct: r.ExtractedProduct,
			ExtractedExpiry:  r.ExtractedExpiry,
			Error:            r.Error,
		}
		if r.Comparison != nil {
			result.ProductScore = r.Comparison.ProductMatch.Score
			result.DateScore = r.Comparison.DateMatch.Score
			result.OverallScore = r.Comparison.OverallScore
		}
		spec.Results = append(spec.Results, result)
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("eval_%s_%s.yaml", provider, timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}

	return path, nil
}

// LoadFromYAML reads a previously saved evaluation report.
func LoadFromYAML(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}

	return &spec, nil
}
