package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictionAudit is one scored (or failed) prediction request, recorded
// best-effort for later review of model behaviour in the workshop.
type PredictionAudit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Plate         string             `bson:"plate,omitempty" json:"plate,omitempty"`
	SchemaVersion string             `bson:"schema_version" json:"schema_version"`
	Inputs        map[string]any     `bson:"inputs" json:"inputs"`
	PredictedDays *float64           `bson:"predicted_days,omitempty" json:"predicted_days,omitempty"`
	Error         string             `bson:"error,omitempty" json:"error,omitempty"`
	RequestedBy   string             `bson:"requested_by,omitempty" json:"requested_by,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// PredictionResponse is the user-facing result of a prediction request.
type PredictionResponse struct {
	Days   float64           `json:"days"`
	Hours  float64           `json:"hours"`
	Row    map[string]any    `json:"row"`
	Badges map[string]string `json:"badges"`
}
