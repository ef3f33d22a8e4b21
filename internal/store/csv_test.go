package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

const sampleCSV = `truck_number_plate,vehicle_model,year_bought,service_date,total_km_run,vibrations_level,route_type,approx_past_services,days_until_next_service
MH12AB1234,Tata Prima,2018,2024-06-01,250000,4.2,Highway,7,45
MH12AB1234,Tata Prima,2018,2024-01-01,230000,3.9,Highway,6,60
KA05XY9999,Eicher Pro 6035,2021,2024-03-15,90000,2.1,City,3,80
`

func TestReadSample(t *testing.T) {
	s, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	latest, ok := s.FindLatest("MH12AB1234")
	require.True(t, ok)
	assert.Equal(t, "Tata Prima", latest.VehicleModel)
	assert.Equal(t, 2018, latest.YearBought)
	assert.Equal(t, 250000.0, latest.TotalKmRun)
	assert.Equal(t, 4.2, latest.VibrationsLevel)
	assert.Equal(t, "Highway", latest.RouteType)
	assert.Equal(t, 7, latest.ApproxPastServices)
	require.NotNil(t, latest.DaysUntilNextService)
	assert.Equal(t, 45.0, *latest.DaysUntilNextService)
	// Columns absent from the file stay at their zero value.
	assert.Empty(t, latest.ServiceType)
	assert.Nil(t, latest.LastServiceDate)
}

func TestReadSkipsMalformedRows(t *testing.T) {
	csv := `truck_number_plate,service_date,total_km_run
GOOD1,2024-01-01,1000
BAD1,not-a-date,2000
BAD2,2024-01-02,lots
GOOD2,2024-01-03,3000
`
	s, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, ok := s.FindLatest("BAD1")
	assert.False(t, ok)
	_, ok = s.FindLatest("GOOD2")
	assert.True(t, ok)
}

func TestReadEmptyInput(t *testing.T) {
	s, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trucks.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestExportCSVRoundTrip(t *testing.T) {
	days := 45.0
	last := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	original := models.VehicleRecord{
		Plate:                "MH12AB1234",
		VehicleModel:         "Tata Prima",
		YearBought:           2018,
		ServiceDate:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		LastServiceDate:      &last,
		TotalKmRun:           250000,
		VibrationsLevel:      4.2,
		RouteType:            "Highway",
		ServiceType:          "Major",
		PartsInStockStatus:   "Available",
		ApproxPastServices:   7,
		DaysUntilNextService: &days,
	}

	var buf bytes.Buffer
	require.NoError(t, New([]models.VehicleRecord{original}).ExportCSV(&buf))

	reloaded, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())

	got, ok := reloaded.FindLatest("MH12AB1234")
	require.True(t, ok)
	assert.Equal(t, original, *got)
}

func TestExportCSVHeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(nil).ExportCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "truck_number_plate,vehicle_model"))
}
