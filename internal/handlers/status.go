package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-maintenance/internal/predictor"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

// StatusHandler reports service liveness and which optional pieces are
// usable. The model being absent degrades prediction only, so status
// stays "ok" either way.
type StatusHandler struct {
	Store     *store.Store
	Regressor predictor.Regressor
}

// Health handles GET /health.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Status         string `json:"status"`
		Records        int    `json:"records"`
		ModelAvailable bool   `json:"model_available"`
	}{
		Status:         "ok",
		Records:        h.Store.Len(),
		ModelAvailable: h.Regressor.Available(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
