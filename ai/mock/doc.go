// Package mock provides test double implementations of the ai interfaces.
//
// This package contains mock implementations of ai.Generator,
// ai.Classifier, and ai.Provider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewProvider()
//	answer, err := provider.Generator().Complete(ctx, "prompt")
//
//	// Custom behavior injection
//	cls := mock.NewClassifier()
//	cls.AnalyzeSentimentFunc = func(ctx context.Context, docs []ai.Document) ([]ai.SentimentResult, error) {
//	    return nil, errors.New("service down")
//	}
//
//	// Check call counts
//	count := cls.AnalyzeSentimentCalls()
//
// # Default Behavior
//
//   - Generator: echoes a canned answer mentioning the prompt length
//   - Classifier: detects "en", classifies everything neutral, extracts
//     the first words of each document as a key phrase
package mock
