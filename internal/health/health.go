// Package health maps individual sensor readings to qualitative states
// for display next to prediction inputs.
package health

import "github.com/ukydev/fleet-maintenance/internal/models"

// State is the qualitative classification of a single reading.
type State string

const (
	Healthy  State = "Healthy"
	Moderate State = "Moderate"
	Critical State = "Critical"
)

// Classify maps a reading against two thresholds. A value on a boundary
// belongs to the higher band: value == good is Healthy, value == warn is
// Moderate. The classifier carries no metric-specific knowledge; all
// domain thresholds live with the caller.
func Classify(value, good, warn float64) State {
	switch {
	case value >= good:
		return Healthy
	case value >= warn:
		return Moderate
	default:
		return Critical
	}
}

// maxSafeEngineTempC is the reference point for the engine temperature
// margin: the badge grades headroom below it, not the raw reading.
const maxSafeEngineTempC = 140

// maxVibrationLevel bounds the vibration scale the same way.
const maxVibrationLevel = 10

// Badges grades the sensor readings of a record that have workshop
// thresholds defined. Keys are schema field names.
func Badges(r *models.VehicleRecord) map[string]State {
	return BadgeValues(
		r.EngineTemperatureC,
		r.VibrationsLevel,
		r.OilLifePercent,
		r.BatteryHealthPercent,
	)
}

// BadgeValues grades raw sensor values without needing a full record.
func BadgeValues(engineTempC, vibrations, oilLifePct, batteryPct float64) map[string]State {
	return map[string]State{
		"engine_temperature_c":   Classify(maxSafeEngineTempC-engineTempC, 80, 40),
		"vibrations_level":       Classify(maxVibrationLevel-vibrations, 7, 4),
		"oil_life_percent":       Classify(oilLifePct, 60, 30),
		"battery_health_percent": Classify(batteryPct, 70, 40),
	}
}
