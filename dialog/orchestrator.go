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
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coolair/servantus/ai"
	"github.com/coolair/servantus/core"
	"github.com/coolair/servantus/retrieval"
	"github.com/coolair/servantus/store"
)

const (
	// DefaultHistoryLimit bounds how many past exchanges feed the prompt.
	DefaultHistoryLimit = 5

	// DefaultSearchTop is how many documents retrieval asks for per turn.
	DefaultSearchTop = 3

	// DefaultNoResultsAnswer is returned when retrieval finds nothing.
	DefaultNoResultsAnswer = "Нічого не знайдено."

	// DefaultNoKnowledgeAnswer is returned when retrieval found documents
	// but none of them carried usable content.
	DefaultNoKnowledgeAnswer = "На жаль, не вдалося знайти відповідь у базі знань."
)

// Config tunes turn handling. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	HistoryLimit      int
	SearchTop         int
	RelevanceFraction float64
	NoResultsAnswer   string
}

// DefaultConfig returns the standard turn configuration.
func DefaultConfig() *Config {
	return &Config{
		HistoryLimit:      DefaultHistoryLimit,
		SearchTop:         DefaultSearchTop,
		RelevanceFraction: retrieval.DefaultRelevanceFraction,
		NoResultsAnswer:   DefaultNoResultsAnswer,
	}
}

// TurnRequest is one incoming customer question.
type TurnRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
	DialogID string `json:"dialog_id,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

// Validate reports whether the request can be handled.
func (r *TurnRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrUserIDRequired
	}
	if strings.TrimSpace(r.Question) == "" {
		return ErrQuestionRequired
	}
	return nil
}

// TurnResult is the answer to one turn plus its retrieval provenance.
// GenerationMS is nil when the turn was answered without a model call.
type TurnResult struct {
	Answer          string   `json:"answer"`
	SourceDocuments []string `json:"source_documents"`
	SearchSnippet   string   `json:"search_snippet"`
	GenerationMS    *int64   `json:"generation_ms,omitempty"`
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets the logger used by the orchestrator and its history
// reconstructor.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		o.logger = logger
		return nil
	}
}

// Orchestrator runs the full turn protocol: persist the question, rebuild
// history, retrieve, filter, generate and persist the answer.
type Orchestrator struct {
	events    store.EventStore
	searcher  retrieval.Searcher
	generator ai.Generator
	history   *History
	config    *Config
	logger    *slog.Logger
}

// NewOrchestrator wires a turn orchestrator. A nil config means
// DefaultConfig.
func NewOrchestrator(events store.EventStore, searcher retrieval.Searcher, generator ai.Generator, config *Config, opts ...Option) (*Orchestrator, error) {
	if events == nil {
		return nil, ErrEventStoreRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	o := &Orchestrator{
		events:    events,
		searcher:  searcher,
		generator: generator,
		config:    config,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	o.history = NewHistory(events, o.logger)
	return o, nil
}

// HandleTurn runs one question through the pipeline and returns the answer.
//
// The audit trail is written fail-safe: a store error on the question, the
// retained search results or the answer is logged and absorbed. Retrieval
// and generation failures abort the turn.
func (o *Orchestrator) HandleTurn(ctx context.Context, req *TurnRequest) (*TurnResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dialogID := req.DialogID
	if dialogID == "" {
		dialogID = core.NewID()
	}
	questionLang := req.Lang
	if questionLang == "" {
		questionLang = core.DefaultQuestionLang
	}

	o.persist(ctx, &core.Event{
		DialogID: dialogID,
		UserID:   req.UserID,
		Step:     core.StepQuestion,
		Content:  req.Question,
		Meta:     core.Meta{Lang: questionLang},
	})

	history := o.history.Reconstruct(ctx, req.UserID, o.config.HistoryLimit)
	query := BuildSearchQuery(req.Question, history)

	docs, err := o.searcher.Search(ctx, query, o.config.SearchTop)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	if len(docs) == 0 {
		o.logger.Info("no documents retrieved, short-circuiting turn",
			"dialog_id", dialogID,
			"user_id", req.UserID)
		return &TurnResult{
			Answer:          o.config.NoResultsAnswer,
			SourceDocuments: []string{},
		}, nil
	}

	selected := retrieval.SelectRelevant(docs, o.config.RelevanceFraction)
	for _, doc := range selected {
		score := doc.Score
		o.persist(ctx, &core.Event{
			DialogID: dialogID,
			UserID:   req.UserID,
			Step:     core.StepSearchResult,
			Content:  doc.Content,
			Meta:     core.Meta{Source: doc.Source, Score: &score},
		})
	}

	snippet := retrieval.JoinContent(selected)
	answer, latencyMS, err := o.generate(ctx, req.Question, history, snippet)
	if err != nil {
		return nil, err
	}

	meta := core.Meta{Lang: core.DefaultAnswerLang}
	if latencyMS != nil {
		meta.LatencyMS = latencyMS
	}
	o.persist(ctx, &core.Event{
		DialogID: dialogID,
		UserID:   req.UserID,
		Step:     core.StepAnswer,
		Content:  answer,
		Meta:     meta,
	})

	return &TurnResult{
		Answer:          answer,
		SourceDocuments: retrieval.Sources(selected),
		SearchSnippet:   snippet,
		GenerationMS:    latencyMS,
	}, nil
}

// generate produces the answer text. Retrieved documents with no usable
// content skip the model call entirely.
func (o *Orchestrator) generate(ctx context.Context, question string, history []Pair, snippet string) (string, *int64, error) {
	if strings.TrimSpace(snippet) == "" {
		return DefaultNoKnowledgeAnswer, nil, nil
	}

	prompt := BuildPrompt(question, history, snippet)
	start := time.Now()
	answer, err := o.generator.Complete(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	latency := time.Since(start).Milliseconds()
	return answer, &latency, nil
}

// persist writes one audit event and absorbs any failure.
func (o *Orchestrator) persist(ctx context.Context, event *core.Event) {
	if _, err := o.events.Create(ctx, event); err != nil {
		o.logger.Error("failed to persist turn event, continuing",
			"step", event.Step,
			"dialog_id", event.DialogID,
			"error", err)
	}
}
