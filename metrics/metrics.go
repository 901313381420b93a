// Copyright 2025 CoolAir Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes Prometheus instrumentation for the service.
// Metrics live on a dedicated registry so the /metrics endpoint stays free
// of default Go collector noise.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "servantus"

// Metrics holds every instrument the service records into.
type Metrics struct {
	registry *prometheus.Registry

	turnsTotal        prometheus.Counter
	turnShortCircuits prometheus.Counter
	turnFailures      *prometheus.CounterVec
	generationLatency prometheus.Histogram

	enrichmentRuns      prometheus.Counter
	enrichmentFailures  prometheus.Counter
	enrichmentProcessed prometheus.Counter
	metricRecords       prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates the service metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,

		turnsTotal: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Total number of dialog turns handled",
		}),
		turnShortCircuits: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turn_short_circuits_total",
			Help:      "Turns answered without generation because retrieval found nothing",
		}),
		turnFailures: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turn_failures_total",
			Help:      "Failed turns by stage",
		}, []string{"stage"}),
		generationLatency: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_latency_seconds",
			Help:      "Answer generation latency",
			Buckets:   prometheus.DefBuckets,
		}),

		enrichmentRuns: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_runs_total",
			Help:      "Completed enrichment pipeline runs",
		}),
		enrichmentFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_run_failures_total",
			Help:      "Enrichment runs aborted by a scan failure",
		}),
		enrichmentProcessed: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_events_processed_total",
			Help:      "Events enriched and written back",
		}),
		metricRecords: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metric_records_ingested_total",
			Help:      "Derived metric records ingested into the analytics sink",
		}),

		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by method and path",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordTurn counts a completed turn.
func (m *Metrics) RecordTurn() {
	m.turnsTotal.Inc()
}

// RecordShortCircuit counts a turn answered without generation.
func (m *Metrics) RecordShortCircuit() {
	m.turnShortCircuits.Inc()
}

// RecordTurnFailure counts a failed turn for the given stage, e.g.
// "search" or "generation".
func (m *Metrics) RecordTurnFailure(stage string) {
	m.turnFailures.WithLabelValues(stage).Inc()
}

// ObserveGeneration records one answer generation duration.
func (m *Metrics) ObserveGeneration(d time.Duration) {
	m.generationLatency.Observe(d.Seconds())
}

// RecordEnrichmentRun counts one pipeline run and its outcome.
func (m *Metrics) RecordEnrichmentRun(processed, records int) {
	m.enrichmentRuns.Inc()
	m.enrichmentProcessed.Add(float64(processed))
	m.metricRecords.Add(float64(records))
}

// RecordEnrichmentFailure counts an aborted pipeline run.
func (m *Metrics) RecordEnrichmentFailure() {
	m.enrichmentFailures.Inc()
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
