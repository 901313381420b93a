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


package mock

import "github.com/coolair/servantus/ai"

// Provider is a test double for ai.Provider.
// It aggregates mock generator and classifier instances.
type Provider struct {
	generator  *Generator
	classifier *Classifier
}

// NewProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use MockGenerator()/MockClassifier() to access concrete
// types for test assertions.
func NewProvider() ai.Provider {
	return &Provider{
		generator:  NewGenerator(),
		classifier: NewClassifier(),
	}
}

// NewProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewProviderWithServices(generator *Generator, classifier *Classifier) ai.Provider {
	return &Provider{
		generator:  generator,
		classifier: classifier,
	}
}

// Generator returns the mock generator.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Classifier returns the mock classifier.
func (p *Provider) Classifier() ai.Classifier {
	return p.classifier
}

// Close is a no-op for mock provider.
func (p *Provider) Close() error {
	return nil
}

// MockGenerator returns the underlying mock generator for test assertions.
func (p *Provider) MockGenerator() *Generator {
	return p.generator
}

// MockClassifier returns the underlying mock classifier for test assertions.
func (p *Provider) MockClassifier() *Classifier {
	return p.classifier
}
