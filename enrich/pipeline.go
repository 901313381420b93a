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

package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/coolair/servantus/ai"
	"github.com/coolair/servantus/analytics"
	"github.com/coolair/servantus/core"
	"github.com/coolair/servantus/store"
)

const (
	// DefaultBatchSize is how many events go into one classifier call.
	DefaultBatchSize = 10

	// DefaultMaxItems bounds one pipeline run.
	DefaultMaxItems = 100

	// DefaultFallbackLang annotates events whose language could not be
	// detected.
	DefaultFallbackLang = "uk"
)

// Config tunes the enrichment pipeline.
type Config struct {
	BatchSize int
	MaxItems  int

	// PlaceholderLangs are the write-time language defaults. An event
	// whose lang is empty or still a placeholder goes through detection.
	PlaceholderLangs []string

	FallbackLang string
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:        DefaultBatchSize,
		MaxItems:         DefaultMaxItems,
		PlaceholderLangs: []string{core.DefaultQuestionLang, core.DefaultAnswerLang},
		FallbackLang:     DefaultFallbackLang,
	}
}

// Result summarizes one pipeline run.
type Result struct {
	// Scanned is how many unprocessed events the run selected.
	Scanned int `json:"scanned"`

	// Processed is how many events were enriched and written back.
	Processed int `json:"processed"`

	// Records is how many metric records were produced.
	Records int `json:"records"`
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		p.logger = logger
		return nil
	}
}

// Pipeline enriches stored events and fans results out to the metrics
// sink.
type Pipeline struct {
	events     store.EventStore
	classifier ai.Classifier
	sink       analytics.Sink
	config     *Config
	logger     *slog.Logger
}

// NewPipeline wires an enrichment pipeline. A nil config means
// DefaultConfig.
func NewPipeline(events store.EventStore, classifier ai.Classifier, sink analytics.Sink, config *Config, opts ...Option) (*Pipeline, error) {
	if events == nil {
		return nil, ErrEventStoreRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if sink == nil {
		return nil, ErrSinkRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.MaxItems <= 0 {
		config.MaxItems = DefaultMaxItems
	}

	p := &Pipeline{
		events:     events,
		classifier: classifier,
		sink:       sink,
		config:     config,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Run enriches up to maxItems unprocessed events. A non-positive maxItems
// falls back to the configured default. The initial scan failing fails the
// run; classifier and sink failures degrade and are reported through the
// counters instead.
func (p *Pipeline) Run(ctx context.Context, maxItems int) (*Result, error) {
	if maxItems <= 0 {
		maxItems = p.config.MaxItems
	}

	pending, err := p.events.Unprocessed(ctx, maxItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanFailed, err)
	}

	result := &Result{Scanned: len(pending)}
	if len(pending) == 0 {
		return result, nil
	}

	var records []core.MetricRecord
	for batch := range slices.Chunk(pending, p.config.BatchSize) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		processed, batchRecords := p.enrichBatch(ctx, batch)
		result.Processed += processed
		records = append(records, batchRecords...)
	}

	if len(records) > 0 {
		if err := p.sink.IngestBatch(ctx, records); err != nil {
			// Events are already marked processed; the derived records for
			// this run are lost rather than retried.
			p.logger.Error("metric ingestion failed", "records", len(records), "error", err)
		} else {
			result.Records = len(records)
		}
	}

	p.logger.Info("enrichment run complete",
		"scanned", result.Scanned,
		"processed", result.Processed,
		"records", result.Records)
	return result, nil
}

// enrichBatch annotates one batch of events and returns how many were
// written back, plus their derived metric records.
func (p *Pipeline) enrichBatch(ctx context.Context, batch []*core.Event) (int, []core.MetricRecord) {
	p.detectLanguages(ctx, batch)

	docs := make([]ai.Document, len(batch))
	for i, event := range batch {
		docs[i] = ai.Document{ID: event.ID, Text: event.Content, Language: event.Meta.Lang}
	}

	sentiments, err := p.classifier.AnalyzeSentiment(ctx, docs)
	if err != nil {
		// Without sentiment the batch cannot be marked processed; it will
		// be picked up again on the next run.
		p.logger.Error("sentiment analysis failed for batch, skipping", "size", len(batch), "error", err)
		return 0, nil
	}

	phrases, err := p.classifier.ExtractKeyPhrases(ctx, docs)
	if err != nil {
		p.logger.Error("key phrase extraction failed for batch, continuing without phrases",
			"size", len(batch), "error", err)
		phrases = nil
	}

	var processed int
	var records []core.MetricRecord
	now := time.Now().UTC()
	for i, event := range batch {
		if sentiments[i].Err != nil {
			p.logger.Warn("sentiment analysis failed for event, leaving unprocessed",
				"event_id", event.ID, "error", sentiments[i].Err)
			continue
		}

		scores := sentiments[i].Scores
		event.Meta.Sentiment = sentiments[i].Sentiment
		event.Meta.SentimentScore = &scores
		if phrases != nil && phrases[i].Err == nil {
			event.Meta.KeyPhrases = phrases[i].Phrases
		}

		if _, err := p.events.Upsert(ctx, event); err != nil {
			p.logger.Error("failed to write back enriched event",
				"event_id", event.ID, "error", err)
			continue
		}
		processed++
		records = append(records, fanOut(event, now)...)
	}
	return processed, records
}

// detectLanguages replaces placeholder languages in place. Any failure
// leaves the existing language untouched.
func (p *Pipeline) detectLanguages(ctx context.Context, batch []*core.Event) {
	var docs []ai.Document
	var targets []*core.Event
	for _, event := range batch {
		if event.Meta.Lang == "" || slices.Contains(p.config.PlaceholderLangs, event.Meta.Lang) {
			docs = append(docs, ai.Document{ID: event.ID, Text: event.Content})
			targets = append(targets, event)
		}
	}
	if len(docs) == 0 {
		return
	}

	results, err := p.classifier.DetectLanguage(ctx, docs)
	if err != nil {
		p.logger.Warn("language detection failed for batch, keeping existing languages",
			"size", len(docs), "error", err)
	} else {
		for i, result := range results {
			if result.Err != nil {
				p.logger.Warn("language detection failed for event",
					"event_id", targets[i].ID, "error", result.Err)
				continue
			}
			if result.Language != "" {
				targets[i].Meta.Lang = result.Language
			}
		}
	}

	for _, event := range targets {
		if event.Meta.Lang == "" {
			event.Meta.Lang = p.config.FallbackLang
		}
	}
}

// fanOut derives the flat metric records for one enriched event: one
// sentiment, one language, one per key phrase.
func fanOut(event *core.Event, at time.Time) []core.MetricRecord {
	base := core.MetricRecord{
		TimeGenerated: at,
		MessageID:     event.ID,
		UserID:        event.UserID,
		DialogID:      event.DialogID,
		MessageType:   event.Step,
	}

	records := make([]core.MetricRecord, 0, 2+len(event.Meta.KeyPhrases))

	sentiment := base
	sentiment.Metric = core.MetricSentiment
	sentiment.Value = string(event.Meta.Sentiment)
	records = append(records, sentiment)

	if event.Meta.Lang != "" {
		lang := base
		lang.Metric = core.MetricLanguage
		lang.Value = event.Meta.Lang
		records = append(records, lang)
	}

	for _, phrase := range event.Meta.KeyPhrases {
		if phrase == "" {
			continue
		}
		keyword := base
		keyword.Metric = core.MetricKeyword
		keyword.Value = phrase
		records = append(records, keyword)
	}
	return records
}
