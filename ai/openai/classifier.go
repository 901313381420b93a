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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coolair/servantus/ai"
	"github.com/coolair/servantus/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs
// in JSON mode.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// batchDoc is the wire shape of one document sent to the model.
type batchDoc struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// languageRow, sentimentRow, and keyPhraseRow are internal types used for
// JSON unmarshaling of the model's per-document results.
type languageRow struct {
	ID       string `json:"id"`
	Language string `json:"language"`
}

type sentimentRow struct {
	ID        string  `json:"id"`
	Sentiment string  `json:"sentiment"`
	Positive  float64 `json:"positive"`
	Neutral   float64 `json:"neutral"`
	Negative  float64 `json:"negative"`
}

type keyPhraseRow struct {
	ID         string   `json:"id"`
	KeyPhrases []string `json:"key_phrases"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// DetectLanguage identifies the primary language of each document.
func (c *Classifier) DetectLanguage(ctx context.Context, docs []ai.Document) ([]ai.LanguageResult, error) {
	if len(docs) == 0 {
		return []ai.LanguageResult{}, nil
	}

	var parsed struct {
		Results []languageRow `json:"results"`
	}
	if err := c.classify(ctx, languagePromptTemplate, docs, &parsed); err != nil {
		return nil, err
	}

	byID := make(map[string]languageRow, len(parsed.Results))
	for _, row := range parsed.Results {
		byID[row.ID] = row
	}

	results := make([]ai.LanguageResult, len(docs))
	for i, doc := range docs {
		row, ok := byID[doc.ID]
		if !ok || row.Language == "" || row.Language == "und" {
			results[i] = ai.LanguageResult{ID: doc.ID, Err: fmt.Errorf("language not determined for document %s", doc.ID)}
			continue
		}
		results[i] = ai.LanguageResult{ID: doc.ID, Language: strings.ToLower(row.Language)}
	}
	return results, nil
}

// AnalyzeSentiment classifies each document's sentiment.
func (c *Classifier) AnalyzeSentiment(ctx context.Context, docs []ai.Document) ([]ai.SentimentResult, error) {
	if len(docs) == 0 {
		return []ai.SentimentResult{}, nil
	}

	var parsed struct {
		Results []sentimentRow `json:"results"`
	}
	if err := c.classify(ctx, sentimentPromptTemplate, docs, &parsed); err != nil {
		return nil, err
	}

	byID := make(map[string]sentimentRow, len(parsed.Results))
	for _, row := range parsed.Results {
		byID[row.ID] = row
	}

	results := make([]ai.SentimentResult, len(docs))
	for i, doc := range docs {
		row, ok := byID[doc.ID]
		if !ok {
			results[i] = ai.SentimentResult{ID: doc.ID, Err: fmt.Errorf("no sentiment returned for document %s", doc.ID)}
			continue
		}
		sentiment := core.Sentiment(row.Sentiment)
		if err := core.ValidateSentiment(sentiment); err != nil {
			results[i] = ai.SentimentResult{ID: doc.ID, Err: err}
			continue
		}
		results[i] = ai.SentimentResult{
			ID:        doc.ID,
			Sentiment: sentiment,
			Scores: core.SentimentScore{
				Positive: row.Positive,
				Neutral:  row.Neutral,
				Negative: row.Negative,
			},
		}
	}
	return results, nil
}

// ExtractKeyPhrases extracts the key phrases of each document.
func (c *Classifier) ExtractKeyPhrases(ctx context.Context, docs []ai.Document) ([]ai.KeyPhraseResult, error) {
	if len(docs) == 0 {
		return []ai.KeyPhraseResult{}, nil
	}

	var parsed struct {
		Results []keyPhraseRow `json:"results"`
	}
	if err := c.classify(ctx, keyPhrasePromptTemplate, docs, &parsed); err != nil {
		return nil, err
	}

	byID := make(map[string]keyPhraseRow, len(parsed.Results))
	for _, row := range parsed.Results {
		byID[row.ID] = row
	}

	results := make([]ai.KeyPhraseResult, len(docs))
	for i, doc := range docs {
		row, ok := byID[doc.ID]
		if !ok {
			results[i] = ai.KeyPhraseResult{ID: doc.ID, Err: fmt.Errorf("no key phrases returned for document %s", doc.ID)}
			continue
		}
		phrases := row.KeyPhrases
		if phrases == nil {
			phrases = []string{}
		}
		results[i] = ai.KeyPhraseResult{ID: doc.ID, Phrases: phrases}
	}
	return results, nil
}

// classify renders the batch into the prompt template, runs a JSON-mode
// completion, and unmarshals the response into out. Malformed JSON is
// repaired and re-requested up to 3 times.
func (c *Classifier) classify(ctx context.Context, template string, docs []ai.Document, out any) error {
	batch := make([]batchDoc, len(docs))
	for i, doc := range docs {
		batch[i] = batchDoc{ID: doc.ID, Text: doc.Text, Language: doc.Language}
	}
	encoded, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf(template, string(encoded))
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			return fmt.Errorf("no choices returned from model")
		}

		responseText := sanitizeModelJSON(response.Choices[0].Content)

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
	return lastErr
}
