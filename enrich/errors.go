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

package enrich

import "errors"

var (
	// ErrEventStoreRequired is returned when constructing a pipeline
	// without an event store.
	ErrEventStoreRequired = errors.New("event store is required")

	// ErrClassifierRequired is returned when constructing a pipeline
	// without a classifier.
	ErrClassifierRequired = errors.New("classifier is required")

	// ErrSinkRequired is returned when constructing a pipeline without a
	// metrics sink.
	ErrSinkRequired = errors.New("metrics sink is required")

	// ErrScanFailed is returned when the unprocessed-event scan fails.
	ErrScanFailed = errors.New("unprocessed event scan failed")

	// ErrSchedulerStopped is returned when submitting work to a stopped
	// scheduler.
	ErrSchedulerStopped = errors.New("scheduler is stopped")
)
