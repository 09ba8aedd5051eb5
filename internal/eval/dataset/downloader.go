package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Downloader fetches URL-based dataset images into a local directory so a run
// never depends on remote hosts mid-flight.
type Downloader struct {
	HTTPClient *http.Client
	// Delay between downloads to stay polite with image hosts
	Delay time.Duration
}

func NewDownloader() *Downloader {
	return &Downloader{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Delay: 500 * time.Millisecond,
	}
}

// DownloadAll fetches every URL-based record's image into outputDir, skipping
// files that already exist. Returns the number downloaded.
func (d *Downloader) DownloadAll(records []LabelRecord, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create image directory: %w", err)
	}

	downloaded := 0
	for _, record := range records {
		if record.ImageURL == "" {
			continue
		}

		outputPath := filepath.Join(outputDir, record.Identifier+".jpg")
		if _, err := os.Stat(outputPath); err == nil {
			slog.Debug("Image already downloaded", "identifier", record.Identifier)
			continue
		}

		if err := d.downloadImage(record.ImageURL, outputPath); err != nil {
			slog.Warn("Failed to download image", "identifier", record.Identifier, "url", record.ImageURL, "error", err)
			continue
		}

		downloaded++
		slog.Info("Downloaded image", "identifier", record.Identifier)
		time.Sleep(d.Delay)
	}

	return downloaded, nil
}

// downloadImage downloads an image from a URL to a file
func (d *Downloader) downloadImage(url, outputPath string) error {
	resp, err := d.HTTPClient.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	// Tiny responses are placeholders, not label photos
	if len(imageData) < 1000 {
		return fmt.Errorf("image too small (likely placeholder), size: %d bytes", len(imageData))
	}

	if err := os.WriteFile(outputPath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}
