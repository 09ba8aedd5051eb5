package extraction

import (
	"testing"
)

func TestParseModelReply(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		product    string
		expiryDate string
	}{
		{
			name:       "clean JSON",
			reply:      `{"product":"SHARPS CONTAINER 10L","expiryDate":"2027-01-01"}`,
			product:    "SHARPS CONTAINER 10L",
			expiryDate: "2027-01-01",
		},
		{
			name:       "JSON wrapped in prose",
			reply:      "Sure! Here is the extracted data:\n{\"product\":\"SHARPS CONTAINER 10L\",\"expiryDate\":\"2027-01-01\"}\nLet me know if you need anything else.",
			product:    "SHARPS CONTAINER 10L",
			expiryDate: "2027-01-01",
		},
		{
			name:       "markdown code block",
			reply:      "```json\n{\"product\":\"Gauze Pads\",\"expiryDate\":\"2026-05-01\"}\n```",
			product:    "Gauze Pads",
			expiryDate: "2026-05-01",
		},
		{
			name:       "broken JSON recovered by regex",
			reply:      `{"product":"Saline Solution","expiryDate":"2025-12-01",}`,
			product:    "Saline Solution",
			expiryDate: "2025-12-01",
		},
		{
			name:       "escaped quotes in regex fallback",
			reply:      `junk "product":"Bandage \"Large\"" more junk "expiryDate":"2026-01-01" trailing`,
			product:    `Bandage "Large"`,
			expiryDate: "2026-01-01",
		},
		{
			name:       "unparseable reply",
			reply:      "I could not read the label, sorry.",
			product:    "",
			expiryDate: "",
		},
		{
			name:       "empty reply",
			reply:      "",
			product:    "",
			expiryDate: "",
		},
		{
			name:       "missing fields in JSON",
			reply:      `{"product":"Alcohol Wipes"}`,
			product:    "Alcohol Wipes",
			expiryDate: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseModelReply(tt.reply)
			if result.Product != tt.product {
				t.Errorf("Product: got %q, want %q", result.Product, tt.product)
			}
			if result.ExpiryDate != tt.expiryDate {
				t.Errorf("ExpiryDate: got %q, want %q", result.ExpiryDate, tt.expiryDate)
			}
		})
	}
}
