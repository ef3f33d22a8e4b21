// Package telemetry keeps the most recent live sensor reading per truck,
// fed by an MQTT subscription. The feed is a display aid for the
// dashboard; it never mutates the historical record store.
package telemetry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Reading is one live sensor sample published by a truck or gateway.
type Reading struct {
	Plate                string    `json:"truck_number_plate"`
	EngineTemperatureC   float64   `json:"engine_temperature_c"`
	VibrationsLevel      float64   `json:"vibrations_level"`
	OilLifePercent       float64   `json:"oil_life_percent"`
	BatteryHealthPercent float64   `json:"battery_health_percent"`
	Timestamp            time.Time `json:"timestamp"`
}

// Feed holds the latest reading per plate. Safe for concurrent use: the
// MQTT client delivers on its own goroutine while handlers read.
type Feed struct {
	mu     sync.RWMutex
	latest map[string]Reading
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{latest: make(map[string]Reading)}
}

// Record stores a reading, keyed case-insensitively by plate. Readings
// without a plate are dropped.
func (f *Feed) Record(r Reading) {
	plate := strings.ToUpper(strings.TrimSpace(r.Plate))
	if plate == "" {
		return
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	f.mu.Lock()
	f.latest[plate] = r
	f.mu.Unlock()
}

// Latest returns the most recent reading for the plate.
func (f *Feed) Latest(plate string) (Reading, bool) {
	key := strings.ToUpper(strings.TrimSpace(plate))
	f.mu.RLock()
	defer f.mu.RUnlock()
	r, ok := f.latest[key]
	return r, ok
}

// HandleMessage is the MQTT message callback. Malformed payloads are
// logged and dropped; a bad publisher must not take the feed down.
func (f *Feed) HandleMessage(_ mqtt.Client, msg mqtt.Message) {
	var r Reading
	if err := json.Unmarshal(msg.Payload(), &r); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("dropping malformed telemetry message")
		return
	}
	f.Record(r)
}

// Subscribe connects to the broker and routes the topic into the feed.
// The returned client should be disconnected on shutdown.
func Subscribe(broker, clientID, topic string, feed *Feed) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", broker, token.Error())
	}
	if token := client.Subscribe(topic, 0, feed.HandleMessage); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("subscribe to %s: %w", topic, token.Error())
	}
	log.WithFields(log.Fields{"broker": broker, "topic": topic}).Info("telemetry feed subscribed")
	return client, nil
}
