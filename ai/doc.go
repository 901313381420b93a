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


// Package ai provides abstractions for the language services used in
// servantus.
//
// Two contracts live here:
//
//   - Generator: prompt-in/text-out completion, the product's primary
//     value path. Its failures are user-visible (fail-loud).
//   - Classifier: batch language detection, sentiment analysis, and key
//     phrase extraction for the enrichment pipeline. Classifier results
//     are positional and carry per-document errors so one bad document
//     never fails a whole batch.
//
// # Implementation Packages
//
//   - ai/openai: production implementation over OpenAI-compatible chat
//     APIs (classification via JSON-mode prompting)
//   - ai/mock: test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Public production constructors return interface types to enforce
// abstraction:
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Mock constructors return concrete types so tests can inject behavior and
// assert on call counts:
//
//	cls := mock.NewClassifier()
//	cls.AnalyzeSentimentFunc = func(...) ... // needs concrete type
package ai
