package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  State
	}{
		{"at good threshold", 80, Healthy},
		{"above good threshold", 95.5, Healthy},
		{"just below good threshold", 79.999, Moderate},
		{"at warn threshold", 40, Moderate},
		{"just below warn threshold", 39.999, Critical},
		{"far below warn threshold", -10, Critical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value, 80, 40))
		})
	}
}

func TestBadges(t *testing.T) {
	r := &models.VehicleRecord{
		EngineTemperatureC:   90,  // margin 50 -> Moderate
		VibrationsLevel:      2,   // margin 8 -> Healthy
		OilLifePercent:       25,  // -> Critical
		BatteryHealthPercent: 70,  // boundary -> Healthy
	}

	badges := Badges(r)
	assert.Equal(t, Moderate, badges["engine_temperature_c"])
	assert.Equal(t, Healthy, badges["vibrations_level"])
	assert.Equal(t, Critical, badges["oil_life_percent"])
	assert.Equal(t, Healthy, badges["battery_health_percent"])
}

func TestBadgeValuesCoversAllGradedSensors(t *testing.T) {
	badges := BadgeValues(120, 9.5, 50, 30)
	assert.Len(t, badges, 4)
	assert.Equal(t, Critical, badges["engine_temperature_c"]) // margin 20
	assert.Equal(t, Critical, badges["vibrations_level"])     // margin 0.5
	assert.Equal(t, Moderate, badges["oil_life_percent"])
	assert.Equal(t, Critical, badges["battery_health_percent"])
}
