package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-maintenance/internal/health"
	"github.com/ukydev/fleet-maintenance/internal/telemetry"
)

// TelemetryHandler exposes the live sensor feed.
type TelemetryHandler struct {
	Feed *telemetry.Feed
}

// NewTelemetryHandler creates a telemetry handler over the feed.
func NewTelemetryHandler(feed *telemetry.Feed) *TelemetryHandler {
	return &TelemetryHandler{Feed: feed}
}

// Latest handles GET /api/telemetry/latest?plate=...
func (h *TelemetryHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plate := r.URL.Query().Get("plate")
	reading, ok := h.Feed.Latest(plate)
	if !ok {
		http.Error(w, "No live reading for this plate", http.StatusNotFound)
		return
	}

	resp := struct {
		Reading telemetry.Reading       `json:"reading"`
		Badges  map[string]health.State `json:"badges"`
	}{
		Reading: reading,
		Badges: health.BadgeValues(
			reading.EngineTemperatureC,
			reading.VibrationsLevel,
			reading.OilLifePercent,
			reading.BatteryHealthPercent,
		),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
