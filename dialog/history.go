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

package dialog

import (
	"context"
	"log/slog"

	"github.com/coolair/servantus/core"
	"github.com/coolair/servantus/store"
)

// fetchFactor is how many raw events are fetched per requested pair. A
// question and its answer take two events, and interleaved dialogs or
// unanswered questions waste slots, so the window is oversized.
const fetchFactor = 4

// Pair is one completed question/answer exchange.
type Pair struct {
	Question string
	Answer   string
}

// History reconstructs recent question/answer pairs for a user.
type History struct {
	events store.EventStore
	logger *slog.Logger
}

// NewHistory creates a history reconstructor over the given event store.
func NewHistory(events store.EventStore, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{events: events, logger: logger}
}

// Reconstruct returns up to limit question/answer pairs for the user in
// chronological order, oldest first. Pairing is greedy newest-first: each
// question is matched with the most recent unconsumed answer sharing its
// dialog id. Questions with no answer in the fetched window are skipped.
//
// History is best-effort: a store failure is logged and yields an empty
// result rather than an error.
func (h *History) Reconstruct(ctx context.Context, userID string, limit int) []Pair {
	if limit <= 0 {
		return nil
	}

	steps := []core.Step{core.StepQuestion, core.StepAnswer}
	events, err := h.events.RecentByUser(ctx, userID, steps, limit*fetchFactor)
	if err != nil {
		h.logger.Warn("history reconstruction failed, continuing without history",
			"user_id", userID,
			"error", err)
		return nil
	}

	// Single newest-first pass. Answers stack up per dialog and a
	// question from the same dialog consumes the last one pushed, the
	// nearest answer that follows it in time, so an answer can never
	// pair with a newer question.
	answers := make(map[string][]string)
	var pairs []Pair
	for _, event := range events {
		switch event.Step {
		case core.StepAnswer:
			answers[event.DialogID] = append(answers[event.DialogID], event.Content)
		case core.StepQuestion:
			pool := answers[event.DialogID]
			if len(pool) == 0 {
				continue
			}
			answers[event.DialogID] = pool[:len(pool)-1]
			pairs = append(pairs, Pair{Question: event.Content, Answer: pool[len(pool)-1]})
		}
		if len(pairs) == limit {
			break
		}
	}

	// Pairs were collected newest first; callers want chronological order.
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return pairs
}
