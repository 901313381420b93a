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

// Package servantus wires the full application from configuration: event
// store, AI provider, search client, turn orchestrator, enrichment
// pipeline and analytics. The cmd/servantus binary and embedding callers
// use this facade instead of assembling the pieces by hand.
package servantus

import (
	"fmt"
	"log/slog"

	"github.com/coolair/servantus/ai"
	"github.com/coolair/servantus/ai/openai"
	"github.com/coolair/servantus/analytics"
	"github.com/coolair/servantus/analytics/memory"
	"github.com/coolair/servantus/config"
	"github.com/coolair/servantus/dialog"
	"github.com/coolair/servantus/enrich"
	"github.com/coolair/servantus/retrieval"
	"github.com/coolair/servantus/retrieval/azsearch"
	"github.com/coolair/servantus/store"
	storebadger "github.com/coolair/servantus/store/badger"
)

// App bundles the assembled services of one process.
type App struct {
	events       store.EventStore
	provider     ai.Provider
	searcher     retrieval.Searcher
	orchestrator *dialog.Orchestrator
	pipeline     *enrich.Pipeline
	reports      *analytics.Service
	logger       *slog.Logger
}

// AppOption configures app assembly.
type AppOption func(*appOptions)

type appOptions struct {
	searcher retrieval.Searcher
	provider ai.Provider
	logger   *slog.Logger
}

// WithSearcher overrides the search client, e.g. for tests.
func WithSearcher(searcher retrieval.Searcher) AppOption {
	return func(o *appOptions) {
		o.searcher = searcher
	}
}

// WithProvider overrides the AI provider, e.g. for tests.
func WithProvider(provider ai.Provider) AppOption {
	return func(o *appOptions) {
		o.provider = provider
	}
}

// WithAppLogger sets the logger handed to every component.
func WithAppLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		o.logger = logger
	}
}

// NewApp assembles the application from a validated configuration.
// Callers own the returned App and must Close it.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	options := &appOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	var events store.EventStore
	var err error
	if cfg.StoreInMemory {
		events, err = storebadger.OpenMemory()
	} else {
		events, err = storebadger.Open(cfg.StorePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open event store: %w", err)
	}

	provider := options.provider
	if provider == nil {
		aiConfig := ai.NewConfig(
			ai.WithHost(cfg.AIHost),
			ai.WithGenerationModel(cfg.GenerationModel),
			ai.WithClassifierModel(cfg.ClassifierModel),
			ai.WithToken(cfg.AIToken),
			ai.WithMaxAnswerTokens(cfg.MaxAnswerTokens),
		)
		aiConfig.Temperature = cfg.Temperature
		provider, err = openai.NewProvider(aiConfig)
		if err != nil {
			_ = events.Close()
			return nil, fmt.Errorf("failed to create AI provider: %w", err)
		}
	}

	searcher := options.searcher
	if searcher == nil {
		searcher, err = azsearch.NewClient(azsearch.Config{
			Endpoint:  cfg.SearchEndpoint,
			APIKey:    cfg.SearchAPIKey,
			IndexName: cfg.SearchIndex,
		})
		if err != nil {
			_ = provider.Close()
			_ = events.Close()
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
	}

	turnConfig := &dialog.Config{
		HistoryLimit:      cfg.HistoryLimit,
		SearchTop:         cfg.SearchTop,
		RelevanceFraction: cfg.RelevanceFraction,
		NoResultsAnswer:   dialog.DefaultNoResultsAnswer,
	}
	orchestrator, err := dialog.NewOrchestrator(events, searcher, provider.Generator(), turnConfig,
		dialog.WithLogger(options.logger))
	if err != nil {
		_ = provider.Close()
		_ = events.Close()
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	analyticsStore := memory.NewStore()
	pipelineConfig := enrich.DefaultConfig()
	pipelineConfig.BatchSize = cfg.EnrichBatchSize
	pipelineConfig.MaxItems = cfg.EnrichMaxItems
	pipeline, err := enrich.NewPipeline(events, provider.Classifier(), analyticsStore, pipelineConfig,
		enrich.WithLogger(options.logger))
	if err != nil {
		_ = provider.Close()
		_ = events.Close()
		return nil, fmt.Errorf("failed to create enrichment pipeline: %w", err)
	}

	reports, err := analytics.NewService(analyticsStore)
	if err != nil {
		_ = provider.Close()
		_ = events.Close()
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	return &App{
		events:       events,
		provider:     provider,
		searcher:     searcher,
		orchestrator: orchestrator,
		pipeline:     pipeline,
		reports:      reports,
		logger:       options.logger,
	}, nil
}

// Events returns the event store.
func (a *App) Events() store.EventStore {
	return a.events
}

// Orchestrator returns the turn orchestrator.
func (a *App) Orchestrator() *dialog.Orchestrator {
	return a.orchestrator
}

// Pipeline returns the enrichment pipeline.
func (a *App) Pipeline() *enrich.Pipeline {
	return a.pipeline
}

// Reports returns the analytics query service.
func (a *App) Reports() *analytics.Service {
	return a.reports
}

// Close releases the provider and the event store.
func (a *App) Close() error {
	var firstErr error
	if err := a.provider.Close(); err != nil {
		firstErr = err
	}
	if err := a.events.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
