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

package dialog

import "errors"

var (
	// ErrEventStoreRequired is returned when constructing an orchestrator
	// without an event store.
	ErrEventStoreRequired = errors.New("event store is required")

	// ErrSearcherRequired is returned when constructing an orchestrator
	// without a searcher.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrGeneratorRequired is returned when constructing an orchestrator
	// without a generator.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrUserIDRequired is returned for a turn request with no user id.
	ErrUserIDRequired = errors.New("user id is required")

	// ErrQuestionRequired is returned for a turn request with no question.
	ErrQuestionRequired = errors.New("question is required")

	// ErrSearchFailed is returned when the retrieval backend fails.
	ErrSearchFailed = errors.New("search failed")

	// ErrGenerationFailed is returned when answer generation fails.
	ErrGenerationFailed = errors.New("answer generation failed")
)
