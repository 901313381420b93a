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

// Package config defines process configuration and its layered loading:
// built-in defaults, an optional YAML file and SERVANTUS_-prefixed
// environment variables, in that order of precedence.
package config

import (
	"github.com/coolair/servantus/ai"
	"github.com/coolair/servantus/dialog"
	"github.com/coolair/servantus/enrich"
	"github.com/coolair/servantus/retrieval"
)

// Config contains the full process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StorePath is the on-disk event store location. Ignored when
	// StoreInMemory is set.
	StorePath     string `koanf:"store_path"`
	StoreInMemory bool   `koanf:"store_in_memory"`

	// Knowledge-base search backend.
	SearchEndpoint string `koanf:"search_endpoint"`
	SearchAPIKey   string `koanf:"search_api_key"`
	SearchIndex    string `koanf:"search_index"`
	SearchTop      int    `koanf:"search_top"`

	// AI backends. Hosts without a scheme path get /v1 appended.
	AIHost          string  `koanf:"ai_host"`
	GenerationModel string  `koanf:"generation_model"`
	ClassifierModel string  `koanf:"classifier_model"`
	AIToken         string  `koanf:"ai_token"`
	MaxAnswerTokens int     `koanf:"max_answer_tokens"`
	Temperature     float64 `koanf:"temperature"`

	// Turn handling.
	HistoryLimit      int     `koanf:"history_limit"`
	RelevanceFraction float64 `koanf:"relevance_fraction"`

	// Enrichment pipeline.
	EnrichBatchSize       int `koanf:"enrich_batch_size"`
	EnrichMaxItems        int `koanf:"enrich_max_items"`
	EnrichIntervalSeconds int `koanf:"enrich_interval_seconds"`
}

// New returns the built-in defaults.
func New() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8080",
		StorePath:             "data/events",
		SearchTop:             dialog.DefaultSearchTop,
		GenerationModel:       aiDefaults.GenerationModel,
		ClassifierModel:       aiDefaults.ClassifierModel,
		AIToken:               aiDefaults.Token,
		MaxAnswerTokens:       aiDefaults.MaxAnswerTokens,
		Temperature:           aiDefaults.Temperature,
		HistoryLimit:          dialog.DefaultHistoryLimit,
		RelevanceFraction:     retrieval.DefaultRelevanceFraction,
		EnrichBatchSize:       enrich.DefaultBatchSize,
		EnrichMaxItems:        enrich.DefaultMaxItems,
		EnrichIntervalSeconds: 300,
	}
}

// Validate fails fast on settings the process cannot run without.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return missingSetting("addr")
	}
	if !c.StoreInMemory && c.StorePath == "" {
		return missingSetting("store_path")
	}
	if c.SearchEndpoint == "" {
		return missingSetting("search_endpoint")
	}
	if c.SearchAPIKey == "" {
		return missingSetting("search_api_key")
	}
	if c.SearchIndex == "" {
		return missingSetting("search_index")
	}
	if c.AIHost == "" {
		return missingSetting("ai_host")
	}
	if c.RelevanceFraction <= 0 || c.RelevanceFraction > 1 {
		return invalidSetting("relevance_fraction", "must be in (0, 1]")
	}
	if c.SearchTop <= 0 {
		return invalidSetting("search_top", "must be positive")
	}
	if c.HistoryLimit < 0 {
		return invalidSetting("history_limit", "must not be negative")
	}
	if c.EnrichIntervalSeconds <= 0 {
		return invalidSetting("enrich_interval_seconds", "must be positive")
	}
	return nil
}
