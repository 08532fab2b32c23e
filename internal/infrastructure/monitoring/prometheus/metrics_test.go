package prometheus

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "chemvault"}, nil)
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollectorRequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, nil)
	assert.Error(t, err)
}

func TestRegisterIsIdempotent(t *testing.T) {
	c := newTestCollector(t)

	first := c.RegisterCounter("resolutions_total", "help", "source", "confidence")
	second := c.RegisterCounter("resolutions_total", "help", "source", "confidence")

	first.WithLabelValues("pubchem", "high").Inc()
	second.WithLabelValues("pubchem", "high").Inc()

	body := scrape(t, c)
	assert.Contains(t, body, `chemvault_resolutions_total{confidence="high",source="pubchem"} 2`)
}

func TestResolutionMetricsExposition(t *testing.T) {
	c := newTestCollector(t)
	m := NewResolutionMetrics(c)

	m.ObserveSourceAttempt("pubchem", chemistry.StatusFailed, 120*time.Millisecond)
	m.ObserveSourceAttempt("cactus", chemistry.StatusFound, 80*time.Millisecond)
	m.ObserveResolution(chemistry.SourceSecondaryDatabase, chemistry.ConfidenceMedium, 250*time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `chemvault_source_attempts_total{source="pubchem",status="failed"} 1`)
	assert.Contains(t, body, `chemvault_source_attempts_total{source="cactus",status="found"} 1`)
	assert.Contains(t, body, `chemvault_resolutions_total{confidence="medium",source="secondary_database"} 1`)
	assert.Contains(t, body, "chemvault_resolution_duration_seconds_bucket")
}

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}
