package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolair/servantus/ai/mock"
	"github.com/coolair/servantus/analytics"
	"github.com/coolair/servantus/analytics/memory"
	"github.com/coolair/servantus/dialog"
	"github.com/coolair/servantus/enrich"
	"github.com/coolair/servantus/retrieval"
	"github.com/coolair/servantus/store"
	storebadger "github.com/coolair/servantus/store/badger"
)

type stubSearcher struct {
	docs []retrieval.ScoredDocument
	err  error
}

func (s *stubSearcher) Search(ctx context.Context, query string, top int) ([]retrieval.ScoredDocument, error) {
	return s.docs, s.err
}

type testStack struct {
	mux       *http.ServeMux
	events    store.EventStore
	generator *mock.Generator
	searcher  *stubSearcher
}

func setupServer(t *testing.T) *testStack {
	t.Helper()
	events, err := storebadger.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })

	searcher := &stubSearcher{
		docs: []retrieval.ScoredDocument{
			{Content: "Model A costs 400.", Score: 0.9, Source: "pricing.md"},
		},
	}
	generator := mock.NewGenerator()
	orchestrator, err := dialog.NewOrchestrator(events, searcher, generator, nil)
	require.NoError(t, err)

	analyticsStore := memory.NewStore()
	pipeline, err := enrich.NewPipeline(events, mock.NewClassifier(), analyticsStore, nil)
	require.NoError(t, err)

	reports, err := analytics.NewService(analyticsStore)
	require.NoError(t, err)

	mux := http.NewServeMux()
	New(orchestrator, pipeline, reports, nil, nil).Register(mux)
	return &testStack{mux: mux, events: events, generator: generator, searcher: searcher}
}

func (ts *testStack) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	recorder := httptest.NewRecorder()
	ts.mux.ServeHTTP(recorder, req)
	return recorder
}

func TestHandleAsk_Success(t *testing.T) {
	ts := setupServer(t)
	ts.generator.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Model A is 400.", nil
	}

	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"how much is Model A?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result dialog.TurnResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, "Model A is 400.", result.Answer)
	assert.Equal(t, []string{"pricing.md"}, result.SourceDocuments)
	assert.Contains(t, result.SearchSnippet, "Model A costs 400.")
}

func TestHandleAsk_MalformedBody(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodPost, "/ask", `{not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleAsk_MissingFields(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodPost, "/ask", `{"question":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleAsk_MethodNotAllowed(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodGet, "/ask", "")
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestHandleAsk_GenerationFailureIsOpaque(t *testing.T) {
	ts := setupServer(t)
	ts.generator.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model exploded with secret details")
	}

	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "secret details")
}

func TestHandleAsk_NoResults(t *testing.T) {
	ts := setupServer(t)
	ts.searcher.docs = nil

	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"hi"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result dialog.TurnResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, dialog.DefaultNoResultsAnswer, result.Answer)
	assert.Empty(t, result.SourceDocuments)
}

func TestHandleEnrich_ProcessesBacklog(t *testing.T) {
	ts := setupServer(t)

	// A completed turn leaves a question and an answer pending enrichment.
	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"is delivery free?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = ts.do(t, http.MethodPost, "/enrich", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var result enrich.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Processed)

	// Second trigger finds nothing left.
	recorder = ts.do(t, http.MethodPost, "/enrich", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Zero(t, result.Processed)
}

func TestHandleEnrich_MaxItems(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"one?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = ts.do(t, http.MethodPost, "/enrich?max_items=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var result enrich.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Processed)
}

func TestHandleEnrich_InvalidMaxItems(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodPost, "/enrich?max_items=lots", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleAnalytics_Flow(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"is delivery free?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = ts.do(t, http.MethodPost, "/enrich", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = ts.do(t, http.MethodGet, "/analytics?metric=sentiment", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var rows []analytics.Row
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &rows))
	require.NotEmpty(t, rows)
	// The mock classifier labels everything neutral.
	assert.Equal(t, "neutral", rows[0].Label)
	assert.Equal(t, int64(2), rows[0].Value)
}

func TestHandleAnalytics_MissingMetric(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodGet, "/analytics", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleAnalytics_UnknownReport(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodGet, "/analytics?metric=velocity", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestHandleHealth(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestMetricsEndpoint_CountsRequests(t *testing.T) {
	ts := setupServer(t)

	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"hi"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(),
		`servantus_http_requests_total{method="POST",path="/ask",status="200"} 1`)
}

func TestMetricsEndpoint_ObservesGenerationLatency(t *testing.T) {
	ts := setupServer(t)
	ts.generator.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Model A is 400.", nil
	}

	recorder := ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"how much is Model A?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 1, ts.generator.CompleteCalls())

	recorder = ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "servantus_generation_latency_seconds_count 1")

	// A turn with no retrieval hits skips the model and must not be observed.
	ts.searcher.docs = nil
	recorder = ts.do(t, http.MethodPost, "/ask", `{"user_id":"alice","question":"anything else?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = ts.do(t, http.MethodGet, "/metrics", "")
	assert.Contains(t, recorder.Body.String(), "servantus_generation_latency_seconds_count 1")
}
