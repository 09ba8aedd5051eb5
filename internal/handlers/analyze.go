package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/expirywatch/labelscan/internal/extraction"
)

// analyzeTimeout bounds one extraction call, matching the 60 second function
// ceiling of typical serverless hosts.
const analyzeTimeout = 60 * time.Second

// HandleAnalyze serves POST /analyze: multipart image plus optional manual
// overrides, answered with {product, expiryDate}.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		h.writeError(w, "method_not_allowed", "", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, "image_required", "multipart field \"image\" is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, maxRelayImageSize))
	if err != nil {
		h.writeError(w, "read_failed", err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) == 0 {
		h.writeError(w, "image_required", "uploaded image is empty", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, extraction.Request{
		ImageData:     fileData,
		MIMEType:      header.Header.Get("Content-Type"),
		ManualProduct: r.FormValue("manualProduct"),
		ManualDate:    r.FormValue("manualDate"),
	})
	if err != nil {
		if errors.Is(err, extraction.ErrNotConfigured) {
			h.writeError(w, "config", err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeError(w, "extraction_failed", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, result)
}
