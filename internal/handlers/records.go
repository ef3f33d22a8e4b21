package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/health"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

// RecordsHandler serves plate lookups and dataset browsing over the
// read-only record store.
type RecordsHandler struct {
	Store *store.Store
}

// NewRecordsHandler creates a records handler over the store.
func NewRecordsHandler(s *store.Store) *RecordsHandler {
	return &RecordsHandler{Store: s}
}

// lookupResponse carries the latest record for a plate plus its full
// history and a prediction-form prefill derived from the latest record.
type lookupResponse struct {
	Found   bool                    `json:"found"`
	Latest  *models.VehicleRecord   `json:"latest,omitempty"`
	History []models.VehicleRecord  `json:"history,omitempty"`
	Prefill map[string]any          `json:"prefill,omitempty"`
	Badges  map[string]health.State `json:"badges,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// Lookup handles GET /api/records/lookup?plate=...
func (h *RecordsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plate := r.URL.Query().Get("plate")
	latest, ok := h.Store.FindLatest(plate)
	if !ok {
		// Not an error: the operator switches to manual entry.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(lookupResponse{
			Found:   false,
			Message: "No history found for this plate. Enter details manually.",
		})
		return
	}

	resp := lookupResponse{
		Found:   true,
		Latest:  latest,
		History: h.Store.FindAll(plate),
		Prefill: latest.FeatureValues(),
		Badges:  health.Badges(latest),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Browse handles GET /api/records?offset=&limit=
func (h *RecordsHandler) Browse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 20)
	if limit > 200 {
		limit = 200
	}

	resp := struct {
		Total   int                    `json:"total"`
		Offset  int                    `json:"offset"`
		Records []models.VehicleRecord `json:"records"`
	}{
		Total:   h.Store.Len(),
		Offset:  offset,
		Records: h.Store.Page(offset, limit),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Export handles GET /api/records/export, streaming the dataset as CSV.
func (h *RecordsHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="truck_dataset.csv"`)
	if err := h.Store.ExportCSV(w); err != nil {
		// Headers are already on the wire, so just log.
		log.WithError(err).Error("dataset export failed mid-stream")
	}
}

// Summary handles GET /api/fleet/summary
func (h *RecordsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.Summary())
}

func queryInt(r *http.Request, name string, fallback int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
