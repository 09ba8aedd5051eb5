package metrics

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldMatch represents the comparison result for a single field
type FieldMatch struct {
	Expected string
	Actual   string
	Score    float64 // 0.0 to 1.0
	Method   string  // "exact", "substring", "fuzzy_high", ...
	Notes    string
}

// LabelComparison scores one extraction against its ground truth.
type LabelComparison struct {
	ProductMatch FieldMatch
	DateMatch    FieldMatch
	OverallScore float64
}

// EvaluationResult represents the outcome for a single dataset record.
type EvaluationResult struct {
	Identifier       string
	ExpectedProduct  string
	ExpectedExpiry   string
	ExtractedProduct string
	ExtractedExpiry  string
	Comparison       *LabelComparison
	ProcessingTime   time.Duration
	Error            string // If extraction failed
}

// CompareLabelFields scores an extracted product/expiry pair against the
// reference values. The product is scored fuzzily; the date either matches
// after normalization or it does not.
func CompareLabelFields(expectedProduct, expectedExpiry, actualProduct, actualExpiry string) *LabelComparison {
	c := &LabelComparison{
		ProductMatch: compareField(expectedProduct, actualProduct),
		DateMatch:    compareDate(expectedExpiry, actualExpiry),
	}
	// Product carries more weight; a wrong name is worse than an off date
	c.OverallScore = 0.6*c.ProductMatch.Score + 0.4*c.DateMatch.Score
	return c
}

func compareDate(expected, actual string) FieldMatch {
	match := FieldMatch{
		Expected: expected,
		Actual:   actual,
	}

	if expected == "" && actual == "" {
		match.Score = 1.0
		match.Method = "both_missing"
		match.Notes = "No expiry on label, none extracted"
		return match
	}
	if expected == "" || actual == "" {
		match.Method = "missing"
		match.Notes = "One side has no date"
		return match
	}
	if expected == actual {
		match.Score = 1.0
		match.Method = "exact"
		match.Notes = "Exact match"
		return match
	}
	match.Method = "no_match"
	match.Notes = "Dates differ"
	return match
}

func compareField(expected, actual string) FieldMatch {
	match := FieldMatch{
		Expected: expected,
		Actual:   actual,
	}

	// Normalize for comparison
	expNorm := normalizeForComparison(expected)
	actNorm := normalizeForComparison(actual)

	// Handle missing fields
	if expected == "" && actual == "" {
		match.Score = 0.5
		match.Method = "both_missing"
		match.Notes = "Both fields are empty"
		return match
	}

	if expected == "" {
		match.Score = 0.0
		match.Method = "expected_missing"
		match.Notes = "Expected value is empty (no ground truth)"
		return match
	}

	if actual == "" {
		match.Score = 0.0
		match.Method = "actual_missing"
		match.Notes = "Extraction produced no value"
		return match
	}

	// Exact match
	if expNorm == actNorm {
		match.Score = 1.0
		match.Method = "exact"
		match.Notes = "Exact match"
		return match
	}

	// Fuzzy match - check for substring containment
	if strings.Contains(actNorm, expNorm) || strings.Contains(expNorm, actNorm) {
		match.Score = 0.8
		match.Method = "substring"
		match.Notes = "Partial match (substring found)"
		return match
	}

	// Levenshtein-based similarity
	similarity := calculateSimilarity(expNorm, actNorm)
	match.Score = similarity
	if similarity > 0.7 {
		match.Method = "fuzzy_high"
		match.Notes = fmt.Sprintf("High similarity (%.2f)", similarity)
	} else if similarity > 0.4 {
		match.Method = "fuzzy_medium"
		match.Notes = fmt.Sprintf("Medium similarity (%.2f)", similarity)
	} else {
		match.Method = "no_match"
		match.Notes = fmt.Sprintf("Low similarity (%.2f)", similarity)
	}

	return match
}

// normalizeForComparison normalizes text for comparison
func normalizeForComparison(text string) string {
	// Convert to lowercase
	text = strings.ToLower(text)

	// Remove punctuation
	re := regexp.MustCompile(`[^\w\s]`)
	text = re.ReplaceAllString(text, "")

	// Remove extra whitespace
	text = strings.Join(strings.Fields(text), " ")

	return strings.TrimSpace(text)
}

// calculateSimilarity calculates similarity ratio (0.0 to 1.0) using Levenshtein distance
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}

	// Convert distance to similarity (0.0 to 1.0)
	return 1.0 - (float64(distance) / float64(maxLen))
}

// levenshteinDistance calculates the Levenshtein distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	if len(s1) == 0 {
		return len(s2)
	}

	if len(s2) == 0 {
		return len(s1)
	}

	rows := len(s1) + 1
	cols := len(s2) + 1
	matrix := make([][]int, rows)
	for i := range matrix {
		matrix[i] = make([]int, cols)
	}

	for i := 0; i < rows; i++ {
		matrix[i][0] = i
	}
	for j := 0; j < cols; j++ {
		matrix[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			matrix[i][j] = min(deletion, min(insertion, substitution))
		}
	}

	return matrix[rows-1][cols-1]
}
