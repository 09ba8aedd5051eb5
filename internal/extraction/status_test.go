package extraction

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2027, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiryDate string
		expected   Status
	}{
		{"45 days out", "2027-03-01", StatusValid},
		{"10 days out", "2027-01-25", StatusExpiringSoon},
		{"exactly 30 days out", "2027-02-14", StatusExpiringSoon},
		{"expires today", "2027-01-15", StatusExpiringSoon},
		{"1 day in the past", "2027-01-14", StatusExpired},
		{"long expired", "2020-06-01", StatusExpired},
		{"empty string", "", StatusValid},
		{"unparseable", "June 2029", StatusValid},
		{"unnormalized input", "14/02/2027", StatusExpiringSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.expiryDate, today)
			if got != tt.expected {
				t.Errorf("DeriveStatus(%q) = %q, want %q", tt.expiryDate, got, tt.expected)
			}
		})
	}
}
