package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

func fixtureStore() *store.Store {
	d45 := 45.0
	return store.New([]models.VehicleRecord{
		{
			Plate:                "MH12AB1234",
			VehicleModel:         "Tata Prima",
			ServiceDate:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EngineTemperatureC:   90,
			OilLifePercent:       80,
			BatteryHealthPercent: 75,
			DaysUntilNextService: &d45,
		},
		{
			Plate:                "MH12AB1234",
			VehicleModel:         "Tata Prima",
			ServiceDate:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EngineTemperatureC:   105,
			OilLifePercent:       50,
			BatteryHealthPercent: 65,
		},
		{
			Plate:       "KA05XY9999",
			ServiceDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	})
}

func TestLookupFound(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/api/records/lookup?plate=mh12ab1234", nil)
	w := httptest.NewRecorder()
	h.Lookup(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp lookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Found)
	require.NotNil(t, resp.Latest)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), resp.Latest.ServiceDate)
	require.Len(t, resp.History, 2)
	assert.True(t, resp.History[0].ServiceDate.After(resp.History[1].ServiceDate))
	assert.Equal(t, "Tata Prima", resp.Prefill["vehicle_model"])
	assert.NotEmpty(t, resp.Badges)
}

func TestLookupNotFound(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/api/records/lookup?plate=TN01ZZ0000", nil)
	w := httptest.NewRecorder()
	h.Lookup(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp lookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Found)
	assert.Contains(t, resp.Message, "No history")
}

func TestLookupEmptyPlate(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/api/records/lookup", nil)
	w := httptest.NewRecorder()
	h.Lookup(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLookupMethodNotAllowed(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodPost, "/api/records/lookup?plate=MH12AB1234", nil)
	w := httptest.NewRecorder()
	h.Lookup(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestBrowse(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/api/records?offset=1&limit=1", nil)
	w := httptest.NewRecorder()
	h.Browse(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Total   int                    `json:"total"`
		Offset  int                    `json:"offset"`
		Records []models.VehicleRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Offset)
	require.Len(t, resp.Records, 1)
}

func TestBrowseDefaults(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/api/records?limit=junk", nil)
	w := httptest.NewRecorder()
	h.Browse(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Records []models.VehicleRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Records, 3)
}

func TestExport(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/api/records/export", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "truck_dataset.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 4) // header + 3 rows
	assert.Contains(t, lines[0], "truck_number_plate")
}

func TestSummaryEndpoint(t *testing.T) {
	h := NewRecordsHandler(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/api/fleet/summary", nil)
	w := httptest.NewRecorder()
	h.Summary(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp store.FleetSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalRecords)
	assert.Equal(t, 2, resp.UniqueTrucks)
}
