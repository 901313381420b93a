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
	"net/http"
	"strconv"
)

// handleEnrich handles POST /enrich. The optional max_items query parameter
// bounds the run; absent or zero falls back to the configured default.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	maxItems := 0
	if raw := r.URL.Query().Get("max_items"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "max_items must be a non-negative integer")
			return
		}
		maxItems = parsed
	}

	result, err := s.pipeline.Run(r.Context(), maxItems)
	if err != nil {
		s.metrics.RecordEnrichmentFailure()
		s.logger.Error("enrichment run failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.RecordEnrichmentRun(result.Processed, result.Records)
	s.writeJSON(w, http.StatusOK, result)
}
