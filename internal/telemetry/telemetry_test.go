package telemetry

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger("verbose")
	assert.Error(t, err)
}

func TestNewLogger_AcceptsKnownLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", ""} {
		_, err := NewLogger(lvl)
		require.NoError(t, err, lvl)
	}
}

func TestMetrics_ClientGaugeTracksConnections(t *testing.T) {
	m := New()
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "mstgraphd_connected_clients 1")
}

func TestMetrics_StageQueueDepthLabeled(t *testing.T) {
	m := New()
	m.ObserveStageQueueDepth("edits", 3)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `stage="edits"`)
}
