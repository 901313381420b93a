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

package analytics

import "errors"

var (
	// ErrQuerierRequired is returned when constructing a service without a
	// querier.
	ErrQuerierRequired = errors.New("querier is required")

	// ErrSinkClosed is returned when ingesting into a closed sink.
	ErrSinkClosed = errors.New("metrics sink is closed")

	// ErrInvalidRecord is returned for a metric record missing required
	// fields.
	ErrInvalidRecord = errors.New("invalid metric record")
)
