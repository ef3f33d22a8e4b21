package main

import (
	"encoding/json"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/telemetry"
)

// TruckState holds the drifting sensor values for one simulated truck.
type TruckState struct {
	Plate        string
	EngineTempC  float64
	Vibrations   float64
	OilLifePct   float64
	BatteryPct   float64
	Deteriorated bool
}

var plates = []string{
	"MH12AB1234", "MH14CD5678", "KA01EF9012", "KA05GH3456", "DL08IJ7890",
	"TN09KL2345", "GJ06MN6789", "RJ14OP0123", "UP32QR4567", "WB20ST8901",
}

func newTruckState(plate string) *TruckState {
	return &TruckState{
		Plate:       plate,
		EngineTempC: 85 + rand.Float64()*15,
		Vibrations:  2 + rand.Float64()*3,
		OilLifePct:  50 + rand.Float64()*50,
		BatteryPct:  60 + rand.Float64()*40,
	}
}

// step advances the truck's sensors by one tick. Healthy trucks hover
// around their baseline; deteriorated trucks drift hot and rough until
// a simulated service resets them.
func (s *TruckState) step() {
	if !s.Deteriorated && rand.Float64() < 0.01 {
		s.Deteriorated = true
	}

	drift := func(v, noise, pull float64) float64 {
		return v + (rand.Float64()*2-1)*noise + pull
	}

	if s.Deteriorated {
		s.EngineTempC = drift(s.EngineTempC, 1.5, 0.8)
		s.Vibrations = drift(s.Vibrations, 0.4, 0.15)
	} else {
		s.EngineTempC = drift(s.EngineTempC, 1.5, 0)
		s.Vibrations = drift(s.Vibrations, 0.4, 0)
	}
	s.OilLifePct = drift(s.OilLifePct, 0.1, -0.05)
	s.BatteryPct = drift(s.BatteryPct, 0.05, -0.01)

	s.EngineTempC = clamp(s.EngineTempC, 60, 150)
	s.Vibrations = clamp(s.Vibrations, 0, 12)
	s.OilLifePct = clamp(s.OilLifePct, 0, 100)
	s.BatteryPct = clamp(s.BatteryPct, 0, 100)

	// Service visit: everything snaps back to healthy.
	if s.OilLifePct <= 2 || s.EngineTempC >= 148 {
		s.EngineTempC = 85 + rand.Float64()*10
		s.Vibrations = 2 + rand.Float64()*2
		s.OilLifePct = 100
		s.Deteriorated = false
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *TruckState) reading(now time.Time) telemetry.Reading {
	return telemetry.Reading{
		Plate:                s.Plate,
		EngineTemperatureC:   s.EngineTempC,
		VibrationsLevel:      s.Vibrations,
		OilLifePercent:       s.OilLifePct,
		BatteryHealthPercent: s.BatteryPct,
		Timestamp:            now,
	}
}

func publish(client mqtt.Client, topic string, r telemetry.Reading) {
	data, err := json.Marshal(r)
	if err != nil {
		log.WithError(err).Error("Failed to marshal reading")
		return
	}
	if token := client.Publish(topic, 0, false, data); token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).WithField("plate", r.Plate).Error("Failed to publish reading")
		return
	}
	log.WithFields(log.Fields{
		"plate":       r.Plate,
		"engine_temp": r.EngineTemperatureC,
		"vibrations":  r.VibrationsLevel,
	}).Info("Published reading")
}

func main() {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}
	topic := os.Getenv("MQTT_TOPIC")
	if topic == "" {
		topic = "fleet/telemetry"
	}

	fleetSize := len(plates)
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 && n <= len(plates) {
			fleetSize = n
		}
	}

	interval := 2 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("fleet-maintenance-simulator").
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", token.Error())
	}

	log.WithFields(log.Fields{
		"broker":     broker,
		"topic":      topic,
		"fleet_size": fleetSize,
		"interval":   interval,
	}).Info("Starting telemetry simulation")

	states := make([]*TruckState, 0, fleetSize)
	for _, plate := range plates[:fleetSize] {
		states = append(states, newTruckState(plate))
	}

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		now := time.Now()
		for _, s := range states {
			s.step()
			publish(client, topic, s.reading(now))
		}
	}
}
