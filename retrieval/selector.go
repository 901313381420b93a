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


package retrieval

import (
	"slices"
	"strings"
)

// DefaultRelevanceFraction is the default fraction-of-max cutoff.
const DefaultRelevanceFraction = 0.8

// ContentSeparator joins retained document content into one snippet.
const ContentSeparator = "\n\n---\n\n"

// SelectRelevant filters a ranked document list to the relevance band:
// every document with score >= fraction * max score is retained, in the
// original rank order. The threshold never exceeds the maximum score, so a
// non-empty input always retains at least the top-scoring document.
// An empty input yields an empty selection.
func SelectRelevant(docs []ScoredDocument, fraction float64) []ScoredDocument {
	if len(docs) == 0 {
		return nil
	}
	if fraction <= 0 {
		fraction = DefaultRelevanceFraction
	}

	maxScore := 0.0
	for _, doc := range docs {
		maxScore = max(maxScore, doc.Score)
	}
	threshold := fraction * maxScore

	selected := make([]ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.Score >= threshold {
			selected = append(selected, doc)
		}
	}
	return selected
}

// JoinContent concatenates the documents' content in rank order, joined
// with ContentSeparator. The result is the knowledge snippet returned to
// the caller and embedded in the generation prompt.
func JoinContent(docs []ScoredDocument) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.Content
	}
	return strings.Join(parts, ContentSeparator)
}

// Sources returns the deduplicated, non-empty provenance references of
// docs, in rank order of first appearance.
func Sources(docs []ScoredDocument) []string {
	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Source == "" {
			continue
		}
		if slices.Contains(sources, doc.Source) {
			continue
		}
		sources = append(sources, doc.Source)
	}
	return sources
}
