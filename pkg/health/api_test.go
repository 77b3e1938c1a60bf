package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tayotravel/tourbook/pkg/health"
)

func TestGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rr := httptest.NewRecorder()

	health.Get()(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response health.Response
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
	assert.NotEmpty(t, response.Uptime)
	assert.NotEmpty(t, response.GoVersion)

	timestamp, err := time.Parse(time.RFC3339, response.Timestamp)
	assert.NoError(t, err)
	assert.True(t, time.Since(timestamp) < time.Minute)
}
