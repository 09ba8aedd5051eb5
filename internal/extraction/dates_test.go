package extraction

import (
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already ISO", "2027-01-01", "2027-01-01"},
		{"day first slashes", "06/07/2029", "2029-07-06"},
		{"day first dots", "06.07.2029", "2029-07-06"},
		{"day first dashes", "06-07-2029", "2029-07-06"},
		{"year first slashes", "2029/07/06", "2029-07-06"},
		{"year first dots", "2029.7.6", "2029-07-06"},
		{"month only slash", "2027/01", "2027-01-01"},
		{"month only dash", "2027-1", "2027-01-01"},
		{"single digit day and month", "6/7/2029", "2029-07-06"},
		{"textual month falls through", "June 2029", "June 2029"},
		{"empty string", "", ""},
		{"garbage", "EXP soon", "EXP soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
