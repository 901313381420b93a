package mock

import (
	"context"
	"strings"

	"github.com/coolair/servantus/ai"
	"github.com/coolair/servantus/core"
)

// Classifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type Classifier struct {
	// DetectLanguageFunc is called by DetectLanguage if set.
	DetectLanguageFunc func(ctx context.Context, docs []ai.Document) ([]ai.LanguageResult, error)

	// AnalyzeSentimentFunc is called by AnalyzeSentiment if set.
	AnalyzeSentimentFunc func(ctx context.Context, docs []ai.Document) ([]ai.SentimentResult, error)

	// ExtractKeyPhrasesFunc is called by ExtractKeyPhrases if set.
	ExtractKeyPhrasesFunc func(ctx context.Context, docs []ai.Document) ([]ai.KeyPhraseResult, error)

	detectCalls    int
	sentimentCalls int
	keyPhraseCalls int
}

// NewClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions and injection.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// DetectLanguage returns "en" for every document by default.
func (m *Classifier) DetectLanguage(ctx context.Context, docs []ai.Document) ([]ai.LanguageResult, error) {
	m.detectCalls++

	if m.DetectLanguageFunc != nil {
		return m.DetectLanguageFunc(ctx, docs)
	}

	results := make([]ai.LanguageResult, len(docs))
	for i, doc := range docs {
		results[i] = ai.LanguageResult{ID: doc.ID, Language: "en"}
	}
	return results, nil
}

// AnalyzeSentiment classifies every document as neutral by default.
func (m *Classifier) AnalyzeSentiment(ctx context.Context, docs []ai.Document) ([]ai.SentimentResult, error) {
	m.sentimentCalls++

	if m.AnalyzeSentimentFunc != nil {
		return m.AnalyzeSentimentFunc(ctx, docs)
	}

	results := make([]ai.SentimentResult, len(docs))
	for i, doc := range docs {
		results[i] = ai.SentimentResult{
			ID:        doc.ID,
			Sentiment: core.SentimentNeutral,
			Scores:    core.SentimentScore{Positive: 0.1, Neutral: 0.8, Negative: 0.1},
		}
	}
	return results, nil
}

// ExtractKeyPhrases extracts the first two words of each document by default.
func (m *Classifier) ExtractKeyPhrases(ctx context.Context, docs []ai.Document) ([]ai.KeyPhraseResult, error) {
	m.keyPhraseCalls++

	if m.ExtractKeyPhrasesFunc != nil {
		return m.ExtractKeyPhrasesFunc(ctx, docs)
	}

	results := make([]ai.KeyPhraseResult, len(docs))
	for i, doc := range docs {
		words := strings.Fields(doc.Text)
		if len(words) > 2 {
			words = words[:2]
		}
		phrases := []string{}
		if len(words) > 0 {
			phrases = append(phrases, strings.Join(words, " "))
		}
		results[i] = ai.KeyPhraseResult{ID: doc.ID, Phrases: phrases}
	}
	return results, nil
}

// DetectLanguageCalls returns the number of times DetectLanguage was called.
func (m *Classifier) DetectLanguageCalls() int {
	return m.detectCalls
}

// AnalyzeSentimentCalls returns the number of times AnalyzeSentiment was called.
func (m *Classifier) AnalyzeSentimentCalls() int {
	return m.sentimentCalls
}

// ExtractKeyPhrasesCalls returns the number of times ExtractKeyPhrases was called.
func (m *Classifier) ExtractKeyPhrasesCalls() int {
	return m.keyPhraseCalls
}

// Reset clears the call counts and custom functions.
func (m *Classifier) Reset() {
	m.detectCalls = 0
	m.sentimentCalls = 0
	m.keyPhraseCalls = 0
	m.DetectLanguageFunc = nil
	m.AnalyzeSentimentFunc = nil
	m.ExtractKeyPhrasesFunc = nil
}
