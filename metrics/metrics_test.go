package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAndServe(t *testing.T) {
	m := New()

	m.RecordTurn()
	m.RecordTurn()
	m.RecordShortCircuit()
	m.RecordTurnFailure("generation")
	m.ObserveGeneration(120 * time.Millisecond)
	m.RecordEnrichmentRun(7, 21)
	m.RecordEnrichmentFailure()
	m.RecordHTTPRequest("POST", "/ask", 200, 50*time.Millisecond)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "servantus_turns_total 2")
	assert.Contains(t, body, "servantus_turn_short_circuits_total 1")
	assert.Contains(t, body, `servantus_turn_failures_total{stage="generation"} 1`)
	assert.Contains(t, body, "servantus_enrichment_events_processed_total 7")
	assert.Contains(t, body, "servantus_metric_records_ingested_total 21")
	assert.Contains(t, body, `servantus_http_requests_total{method="POST",path="/ask",status="200"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.RecordTurn()

	recorder := httptest.NewRecorder()
	b.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	assert.NotContains(t, recorder.Body.String(), "servantus_turns_total 1")
}
