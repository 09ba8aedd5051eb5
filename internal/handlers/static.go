package handlers

import (
	"net/http"
	"strings"

	"github.com/expirywatch/labelscan/internal/web"
)

// HandleStatic serves the embedded web interface. "/" is the desktop table
// UI; "/m" is the phone capture page.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	filepath := strings.TrimPrefix(r.URL.Path, "/")

	switch filepath {
	case "":
		filepath = "index.html"
	case "m", "m/":
		filepath = "m.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := web.FS.ReadFile("static/" + filepath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(filepath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filepath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(filepath, ".html"):
		w.Header().Set("Content-Type", "text/html")
	}

	if _, err := w.Write(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
