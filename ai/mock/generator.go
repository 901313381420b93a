package mock

import (
	"context"
	"fmt"
)

// Generator is a test double for ai.Generator.
// It allows custom behavior injection via the CompleteFunc field.
type Generator struct {
	// CompleteFunc is called by Complete if set.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	completeCalls int
	lastPrompt    string
}

// NewGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions and injection.
func NewGenerator() *Generator {
	return &Generator{}
}

// Complete returns a canned answer by default and records the prompt for
// later assertions.
func (m *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	m.completeCalls++
	m.lastPrompt = prompt

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}

	return fmt.Sprintf("mock answer (prompt length %d)", len(prompt)), nil
}

// CompleteCalls returns the number of times Complete was called.
func (m *Generator) CompleteCalls() int {
	return m.completeCalls
}

// LastPrompt returns the prompt passed to the most recent Complete call.
func (m *Generator) LastPrompt() string {
	return m.lastPrompt
}

// Reset clears the call count, recorded prompt, and custom function.
func (m *Generator) Reset() {
	m.completeCalls = 0
	m.lastPrompt = ""
	m.CompleteFunc = nil
}
