package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLoader(t *testing.T) {
	path := "./labels.parquet"
	loader := NewLoader(path)

	if loader.datasetPath != path {
		t.Errorf("Expected path %s, got %s", path, loader.datasetPath)
	}
}

func TestLoadJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.jsonl")
	content := `{"identifier":"a","image_path":"a.jpg","product":"Gauze","expiry_date":"2027-01-01"}
{"identifier":"b","image_url":"http://example.com/b.jpg","product":"Saline","expiry_date":"2026-06-01"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Identifier != "a" || records[0].Product != "Gauze" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[1].ImageURL != "http://example.com/b.jpg" {
		t.Errorf("Unexpected second record URL: %q", records[1].ImageURL)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := NewLoader("labels.csv").Load()
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
}

func TestImageDataResolution(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("image bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		record  LabelRecord
		wantErr bool
	}{
		{
			name:   "relative path resolved against base dir",
			record: LabelRecord{Identifier: "a", ImagePath: "a.jpg"},
		},
		{
			name:   "url-based record falls back to downloaded file",
			record: LabelRecord{Identifier: "a", ImageURL: "http://example.com/a.jpg"},
		},
		{
			name:    "no image source",
			record:  LabelRecord{Identifier: "x"},
			wantErr: true,
		},
		{
			name:    "missing file",
			record:  LabelRecord{Identifier: "x", ImagePath: "missing.jpg"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.record.ImageData(dir)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ImageData returned error: %v", err)
			}
			if string(data) != "image bytes" {
				t.Errorf("Unexpected image data: %q", data)
			}
		})
	}
}
