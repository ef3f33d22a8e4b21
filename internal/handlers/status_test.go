package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	h := &StatusHandler{Store: fixtureStore(), Regressor: &stubRegressor{available: false}}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status         string `json:"status"`
		Records        int    `json:"records"`
		ModelAvailable bool   `json:"model_available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Records)
	assert.False(t, resp.ModelAvailable, "missing model degrades prediction only")
}
