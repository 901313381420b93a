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
	"errors"
	"net/http"
	"time"

	"github.com/coolair/servantus/dialog"
)

// handleAsk handles POST /ask.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dialog.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	result, err := s.orchestrator.HandleTurn(r.Context(), &req)
	switch {
	case errors.Is(err, dialog.ErrUserIDRequired), errors.Is(err, dialog.ErrQuestionRequired):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, dialog.ErrSearchFailed):
		s.metrics.RecordTurnFailure("search")
		s.logger.Error("turn failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	case errors.Is(err, dialog.ErrGenerationFailed):
		s.metrics.RecordTurnFailure("generation")
		s.logger.Error("turn failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	case err != nil:
		s.metrics.RecordTurnFailure("other")
		s.logger.Error("turn failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.RecordTurn()
	if len(result.SourceDocuments) == 0 && result.SearchSnippet == "" {
		s.metrics.RecordShortCircuit()
	}
	if result.GenerationMS != nil {
		s.metrics.ObserveGeneration(time.Duration(*result.GenerationMS) * time.Millisecond)
	}
	s.writeJSON(w, http.StatusOK, result)
}
