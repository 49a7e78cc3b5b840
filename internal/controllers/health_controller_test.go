package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagehand/internal/hub"
	"stagehand/internal/services"
	"stagehand/internal/testutil"
)

func newHealthController(t *testing.T) (*HealthController, services.DocumentServiceInterface) {
	t.Helper()

	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	svc := services.NewDocumentService(logger, &testutil.MockPersistence{}, &testutil.MockBroadcaster{}, &testutil.MockArchiver{}, metrics)
	return NewHealthController(svc, hub.NewHub(logger, metrics)), svc
}

func TestHealth(t *testing.T) {
	hc, svc := newHealthController(t)
	svc.CreateChat("Alex")

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Status        string  `json:"status"`
		Uptime        string  `json:"uptime"`
		UptimeSeconds float64 `json:"uptime_seconds"`
		Revision      uint64  `json:"revision"`
		Chats         int     `json:"chats"`
		Clients       int     `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Uptime)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
	assert.Equal(t, uint64(1), resp.Revision)
	assert.Equal(t, 2, resp.Chats)
	assert.Equal(t, 0, resp.Clients)
}

func TestHealthRejectsNonGet(t *testing.T) {
	hc, _ := newHealthController(t)

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0h0m0s"},
		{61 * time.Second, "0h1m1s"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2h3m4s"},
		{25 * time.Hour, "25h0m0s"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatDuration(c.in))
	}
}
