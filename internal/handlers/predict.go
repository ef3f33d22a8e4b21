package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/features"
	"github.com/ukydev/fleet-maintenance/internal/health"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/predictor"
	"github.com/ukydev/fleet-maintenance/internal/schema"
)

// PredictHandler assembles a feature row from operator input and scores
// it with the maintenance regressor.
type PredictHandler struct {
	Schema    schema.Schema
	Regressor predictor.Regressor
	// Audit receives a best-effort record of every request; nil disables
	// auditing.
	Audit db.AuditCollection
}

// NewPredictHandler creates a prediction handler.
func NewPredictHandler(s schema.Schema, reg predictor.Regressor, audit db.AuditCollection) *PredictHandler {
	return &PredictHandler{Schema: s, Regressor: reg, Audit: audit}
}

type predictRequest struct {
	Plate  string         `json:"plate,omitempty"`
	Values map[string]any `json:"values"`
}

// Predict handles POST /api/predict.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	row, err := features.Assemble(h.Schema, req.Values)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	days, err := h.Regressor.Predict(r.Context(), row)
	h.recordAudit(r, req.Plate, row, days, err)
	if err != nil {
		switch {
		case errors.Is(err, predictor.ErrModelUnavailable):
			http.Error(w, "Model not found. Install the trained regressor artifact.", http.StatusServiceUnavailable)
		default:
			var perr *predictor.PredictionError
			if errors.As(err, &perr) {
				http.Error(w, perr.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "Prediction failed", http.StatusInternalServerError)
		}
		return
	}

	resp := models.PredictionResponse{
		Days:   days,
		Hours:  days * 24,
		Row:    row.Map(),
		Badges: rowBadges(row),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// rowBadges grades the graded sensor fields of the assembled row.
func rowBadges(row features.Row) map[string]string {
	engineTemp, _ := row.Numeric("engine_temperature_c")
	vibrations, _ := row.Numeric("vibrations_level")
	oilLife, _ := row.Numeric("oil_life_percent")
	battery, _ := row.Numeric("battery_health_percent")

	badges := make(map[string]string, 4)
	for name, state := range health.BadgeValues(engineTemp, vibrations, oilLife, battery) {
		badges[name] = string(state)
	}
	return badges
}

func (h *PredictHandler) recordAudit(r *http.Request, plate string, row features.Row, days float64, predictErr error) {
	if h.Audit == nil {
		return
	}

	audit := models.PredictionAudit{
		Plate:         plate,
		SchemaVersion: h.Schema.Version,
		Inputs:        row.Map(),
		CreatedAt:     time.Now(),
	}
	if predictErr != nil {
		audit.Error = predictErr.Error()
	} else {
		audit.PredictedDays = &days
	}
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		audit.RequestedBy = claims.Username
	}

	if err := h.Audit.InsertPrediction(r.Context(), audit); err != nil {
		log.WithError(err).Warn("failed to record prediction audit entry")
	}
}
