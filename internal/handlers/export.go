package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/expirywatch/labelscan/internal/extraction"
)

// ExportRow is one table row submitted for CSV export.
type ExportRow struct {
	Image      string `json:"image"`
	Product    string `json:"product"`
	ExpiryDate string `json:"expiryDate"`
}

// HandleExport serves POST /export: the client's current rows in, a CSV
// attachment out. Status is derived server-side so the exported file and the
// table badges agree.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
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

	var rows []ExportRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		h.writeError(w, "invalid_json", err.Error(), http.StatusBadRequest)
		return
	}

	out, err := BuildCSV(rows, time.Now())
	if err != nil {
		h.writeError(w, "export_failed", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="labelscan-export.csv"`)
	_, _ = w.Write([]byte(out))
}

// BuildCSV renders rows as CSV with the fixed header and a derived status
// column. Quoting follows RFC 4180 (internal quotes doubled).
func BuildCSV(rows []ExportRow, today time.Time) (string, error) {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)

	if err := cw.Write([]string{"Image", "Product", "Expiry Date", "Status"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		status := extraction.DeriveStatus(row.ExpiryDate, today)
		if err := cw.Write([]string{row.Image, row.Product, row.ExpiryDate, string(status)}); err != nil {
			return "", err
		}
	}
	cw.Flush()
	return sb.String(), cw.Error()
}
