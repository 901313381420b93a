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

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coolair/servantus/analytics"
	"github.com/coolair/servantus/dialog"
	"github.com/coolair/servantus/enrich"
	"github.com/coolair/servantus/metrics"
)

// Server wires the HTTP routes onto the domain services.
type Server struct {
	orchestrator *dialog.Orchestrator
	pipeline     *enrich.Pipeline
	reports      *analytics.Service
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// New creates the API server. Metrics may be nil, in which case a fresh
// instrument set is created; logger may be nil for the default logger.
func New(orchestrator *dialog.Orchestrator, pipeline *enrich.Pipeline, reports *analytics.Service, m *metrics.Metrics, logger *slog.Logger) *Server {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		orchestrator: orchestrator,
		pipeline:     pipeline,
		reports:      reports,
		metrics:      m,
		logger:       logger,
	}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/ask", s.instrument("/ask", s.handleAsk))
	mux.HandleFunc("/enrich", s.instrument("/enrich", s.handleEnrich))
	mux.HandleFunc("/analytics", s.instrument("/analytics", s.handleAnalytics))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
