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


// Package azsearch implements retrieval.Searcher over the Azure AI Search
// REST API. Only the scored-document query surface is used; index
// management is out of scope.
package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coolair/servantus/retrieval"
)

const apiVersion = "2023-07-01-Preview"

// Config holds the search service connection settings.
type Config struct {
	// Endpoint is the service base URL, e.g. "https://myservice.search.windows.net".
	Endpoint string

	// APIKey authenticates requests via the api-key header.
	APIKey string

	// IndexName is the index queried for knowledge documents.
	IndexName string

	// Timeout bounds each search request. Default: 10s.
	Timeout time.Duration
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrEndpointRequired
	}
	if c.APIKey == "" {
		return ErrAPIKeyRequired
	}
	if c.IndexName == "" {
		return ErrIndexNameRequired
	}
	return nil
}

// Client queries an Azure AI Search index for scored documents.
type Client struct {
	endpoint  string
	apiKey    string
	indexName string
	http      *http.Client
	logger    *slog.Logger
}

var _ retrieval.Searcher = (*Client)(nil)

// NewClient creates a search client from config.
//
// Returns retrieval.Searcher interface to enforce abstraction.
func NewClient(config Config) (retrieval.Searcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint:  strings.TrimSuffix(config.Endpoint, "/"),
		apiKey:    config.APIKey,
		indexName: config.IndexName,
		http:      &http.Client{Timeout: timeout},
		logger:    slog.Default().With("component", "azsearch"),
	}, nil
}

// searchRequest mirrors the docs/search API request body.
type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
}

// searchHit mirrors one entry of the response's value array. Provenance
// falls back to the indexer-populated storage path when the source field
// is absent.
type searchHit struct {
	Content     string  `json:"content"`
	Source      string  `json:"source"`
	StoragePath string  `json:"metadata_storage_path"`
	Score       float64 `json:"@search.score"`
}

type searchResponse struct {
	Value []searchHit `json:"value"`
}

// Search returns up to top documents ranked by relevance descending.
func (c *Client) Search(ctx context.Context, query string, top int) ([]retrieval.ScoredDocument, error) {
	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.endpoint, c.indexName, apiVersion)

	body, err := json.Marshal(searchRequest{Search: query, Top: top})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSearchFailed, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	docs := make([]retrieval.ScoredDocument, 0, len(parsed.Value))
	for _, hit := range parsed.Value {
		source := hit.Source
		if source == "" {
			source = hit.StoragePath
		}
		docs = append(docs, retrieval.ScoredDocument{
			Content: hit.Content,
			Score:   hit.Score,
			Source:  source,
		})
	}

	c.logger.Debug("search completed", "query", query, "hits", len(docs))
	return docs, nil
}
