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


package core

import "fmt"

// ValidateEvent validates an Event according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - UserID must not be empty
//   - Step must be one of question, answer, search_result
//   - Meta.Sentiment, when set, must be a known value
//
// NOT validated (populated by the store and the enrichment pipeline):
//   - ID and DialogID (minted on first write when absent)
//   - Timestamp (assigned at write time)
//   - Meta annotations other than sentiment
func ValidateEvent(event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}

	if event.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyContent)
	}

	if event.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyUserID)
	}

	if err := ValidateStep(event.Step); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	if event.Meta.Sentiment != "" {
		if err := ValidateSentiment(event.Meta.Sentiment); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
	}

	return nil
}

// ValidateStep validates that a Step has a known value.
func ValidateStep(step Step) error {
	switch step {
	case StepQuestion, StepAnswer, StepSearchResult:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidStep, step)
}

// ValidateSentiment validates that a Sentiment has a known value.
func ValidateSentiment(s Sentiment) error {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidSentiment, s)
}

// ValidateMetricKind validates that a MetricKind has a known value.
func ValidateMetricKind(k MetricKind) error {
	switch k {
	case MetricSentiment, MetricLanguage, MetricKeyword, MetricOther:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidMetricKind, k)
}
