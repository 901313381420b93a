package ai

import (
	"context"

	"github.com/coolair/servantus/core"
)

// Generator produces an answer text from an assembled prompt.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete sends the prompt to the text-generation service and returns
	// the completion. This is the one external call whose failure is
	// user-visible; callers propagate errors instead of absorbing them.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classifier provides batch NLP analysis over documents.
// All three operations return results positionally aligned with the input
// batch; a failure confined to a single document is reported through that
// result's Err field, not as an operation error.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// DetectLanguage identifies the primary language of each document.
	DetectLanguage(ctx context.Context, docs []Document) ([]LanguageResult, error)

	// AnalyzeSentiment classifies each document's sentiment with a
	// three-way confidence distribution. The Language field of each
	// document hints the classifier.
	AnalyzeSentiment(ctx context.Context, docs []Document) ([]SentimentResult, error)

	// ExtractKeyPhrases extracts the key phrases of each document.
	// Returns an empty phrase list for documents with no notable phrases.
	ExtractKeyPhrases(ctx context.Context, docs []Document) ([]KeyPhraseResult, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Generator returns the text-generation service.
	Generator() Generator

	// Classifier returns the batch NLP service.
	Classifier() Classifier

	// Close releases resources held by the provider and its services.
	Close() error
}

// Document is one unit of a classifier batch.
type Document struct {
	// ID correlates the result back to the source event.
	ID string

	// Text is the content to analyze.
	Text string

	// Language is the ISO 639-1 hint for sentiment and key phrase
	// analysis. Empty for language detection input.
	Language string
}

// LanguageResult is the per-document outcome of language detection.
type LanguageResult struct {
	ID       string
	Language string // ISO 639-1 code, e.g. "uk", "en"
	Err      error  // set when detection failed for this document only
}

// SentimentResult is the per-document outcome of sentiment analysis.
type SentimentResult struct {
	ID        string
	Sentiment core.Sentiment
	Scores    core.SentimentScore
	Err       error
}

// KeyPhraseResult is the per-document outcome of key phrase extraction.
type KeyPhraseResult struct {
	ID      string
	Phrases []string
	Err     error
}
