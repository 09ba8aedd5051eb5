package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBuildCSV(t *testing.T) {
	today := time.Date(2027, 1, 15, 12, 0, 0, 0, time.UTC)
	rows := []ExportRow{
		{Image: "label1.jpg", Product: `Bandage "Large", sterile`, ExpiryDate: "2027-03-01"},
		{Image: "label2.jpg", Product: "Saline", ExpiryDate: "2027-01-01"},
	}

	out, err := BuildCSV(rows, today)
	if err != nil {
		t.Fatalf("BuildCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines (header + 2 rows), got %d", len(lines))
	}
	if lines[0] != "Image,Product,Expiry Date,Status" {
		t.Errorf("Unexpected header: %q", lines[0])
	}

	// Round-trip through a standard CSV reader to verify quoting
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Output did not round-trip through CSV reader: %v", err)
	}
	if records[1][1] != `Bandage "Large", sterile` {
		t.Errorf("Quoted field did not round-trip: %q", records[1][1])
	}
	if records[1][3] != "Valid" {
		t.Errorf("Expected Valid status for far-out date, got %q", records[1][3])
	}
	if records[2][3] != "Expired" {
		t.Errorf("Expected Expired status for past date, got %q", records[2][3])
	}
}

func TestBuildCSVEmpty(t *testing.T) {
	out, err := BuildCSV(nil, time.Now())
	if err != nil {
		t.Fatalf("BuildCSV returned error: %v", err)
	}
	if strings.TrimRight(out, "\n") != "Image,Product,Expiry Date,Status" {
		t.Errorf("Expected only the header, got %q", out)
	}
}

func TestHandleExport(t *testing.T) {
	h := newTestHandler()

	body := `[{"image":"a.jpg","product":"Gauze","expiryDate":"2099-01-01"}]`
	req := httptest.NewRequest("POST", "/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleExport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Gauze") {
		t.Errorf("Expected row in CSV output, got %q", w.Body.String())
	}
}

func TestHandleExportMalformedBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("POST", "/export", strings.NewReader("{oops"))
	w := httptest.NewRecorder()
	h.HandleExport(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}
