package metrics

import (
	"time"
)

// FieldStats contains accuracy statistics for one extracted field
type FieldStats struct {
	ExactMatches  int
	FuzzyMatches  int
	NoMatches     int
	MissingFields int
	AverageScore  float64
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int
	SuccessCount int
	FailureCount int

	ProductAccuracy FieldStats
	DateAccuracy    FieldStats
	OverallAccuracy float64

	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
}

// Aggregate folds per-record results into summary statistics.
func Aggregate(results []EvaluationResult) AggregateResults {
	agg := AggregateResults{
		TotalRecords: len(results),
	}

	var overallSum float64
	for _, r := range results {
		agg.TotalProcessingTime += r.ProcessingTime
		if r.Error != "" || r.Comparison == nil {
			agg.FailureCount++
			continue
		}
		agg.SuccessCount++
		overallSum += r.Comparison.OverallScore
		tally(&agg.ProductAccuracy, r.Comparison.ProductMatch)
		tally(&agg.DateAccuracy, r.Comparison.DateMatch)
	}

	if agg.SuccessCount > 0 {
		agg.OverallAccuracy = overallSum / float64(agg.SuccessCount)
		finalize(&agg.ProductAccuracy, agg.SuccessCount)
		finalize(&agg.DateAccuracy, agg.SuccessCount)
	}
	if agg.TotalRecords > 0 {
		agg.AverageProcessingTime = agg.TotalProcessingTime / time.Duration(agg.TotalRecords)
	}

	return agg
}

func tally(stats *FieldStats, match FieldMatch) {
	stats.AverageScore += match.Score
	switch match.Method {
	case "exact":
		stats.ExactMatches++
	case "substring", "fuzzy_high", "fuzzy_medium":
		stats.FuzzyMatches++
	case "actual_missing", "expected_missing", "missing", "both_missing":
		stats.MissingFields++
	default:
		stats.NoMatches++
	}
}

func finalize(stats *FieldStats, count int) {
	stats.AverageScore /= float64(count)
}
