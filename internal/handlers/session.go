package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/expirywatch/labelscan/internal/models"
)

// maxRelayImageSize caps relayed phone captures at 10MB.
const maxRelayImageSize = 10 * 1024 * 1024

// setCORSHeaders allows cross-origin access to the relay. The phone and
// browser commonly sit on different origins or tunnels.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// HandleSession serves GET/POST/OPTIONS /session/{sessionId}.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	sessionID := strings.TrimPrefix(r.URL.Path, "/session/")
	sessionID = strings.Trim(sessionID, "/")
	if sessionID == "" {
		h.writeError(w, "session_id_required", "missing session id in path", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	case http.MethodGet:
		h.writeJSON(w, h.store.GetOrCreate(sessionID))
	case http.MethodPost:
		h.handleSessionPost(w, r, sessionID)
	default:
		h.writeError(w, "method_not_allowed", "", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleSessionPost(w http.ResponseWriter, r *http.Request, sessionID string) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		h.handleSessionImageUpload(w, r, sessionID)
		return
	}
	h.handleSessionUpdate(w, r, sessionID)
}

// handleSessionImageUpload appends a multipart "image" file as a base64 data
// URL. A missing or empty file is a no-op: the phone's upload loop must stay
// resilient to transient glitches, so the current state comes back either way.
func (h *Handler) handleSessionImageUpload(w http.ResponseWriter, r *http.Request, sessionID string) {
	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeJSON(w, h.store.GetOrCreate(sessionID))
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, maxRelayImageSize))
	if err != nil || len(fileData) == 0 {
		h.writeJSON(w, h.store.GetOrCreate(sessionID))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(fileData)
	}
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(fileData)

	h.writeJSON(w, h.store.AppendImage(sessionID, dataURL))
}

// handleSessionUpdate applies a typed partial update. Unlike image uploads,
// malformed JSON here is a validation error, not a silent no-op.
func (h *Handler) handleSessionUpdate(w http.ResponseWriter, r *http.Request, sessionID string) {
	var update models.SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "invalid_json", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, h.store.Apply(sessionID, update))
}
