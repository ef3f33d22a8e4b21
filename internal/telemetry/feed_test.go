package telemetry

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMessage implements the subset of mqtt.Message the feed touches.
type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func TestFeedRecordAndLatest(t *testing.T) {
	feed := NewFeed()
	feed.Record(Reading{Plate: "MH12AB1234", EngineTemperatureC: 95})

	r, ok := feed.Latest("mh12ab1234")
	require.True(t, ok)
	assert.Equal(t, 95.0, r.EngineTemperatureC)
	assert.False(t, r.Timestamp.IsZero(), "missing timestamp is stamped on receipt")

	_, ok = feed.Latest("KA05XY9999")
	assert.False(t, ok)
}

func TestFeedNewerReadingWins(t *testing.T) {
	feed := NewFeed()
	feed.Record(Reading{Plate: "MH12AB1234", OilLifePercent: 80})
	feed.Record(Reading{Plate: "MH12AB1234", OilLifePercent: 40})

	r, ok := feed.Latest("MH12AB1234")
	require.True(t, ok)
	assert.Equal(t, 40.0, r.OilLifePercent)
}

func TestFeedDropsEmptyPlate(t *testing.T) {
	feed := NewFeed()
	feed.Record(Reading{Plate: "  ", OilLifePercent: 50})
	_, ok := feed.Latest("")
	assert.False(t, ok)
}

func TestHandleMessage(t *testing.T) {
	feed := NewFeed()
	reading := Reading{
		Plate:                "MH12AB1234",
		EngineTemperatureC:   101,
		VibrationsLevel:      6.5,
		OilLifePercent:       35,
		BatteryHealthPercent: 62,
		Timestamp:            time.Now().UTC().Truncate(time.Second),
	}
	payload, err := json.Marshal(reading)
	require.NoError(t, err)

	feed.HandleMessage(nil, &fakeMessage{topic: "fleet/telemetry", payload: payload})

	got, ok := feed.Latest("MH12AB1234")
	require.True(t, ok)
	assert.Equal(t, reading, got)
}

func TestHandleMessageMalformedPayload(t *testing.T) {
	feed := NewFeed()
	feed.HandleMessage(nil, &fakeMessage{topic: "fleet/telemetry", payload: []byte("{nope")})

	_, ok := feed.Latest("MH12AB1234")
	assert.False(t, ok)
}

func TestFeedConcurrentAccess(t *testing.T) {
	feed := NewFeed()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				feed.Record(Reading{Plate: "MH12AB1234", OilLifePercent: float64(j)})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				feed.Latest("MH12AB1234")
			}
		}()
	}
	wg.Wait()
}
