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

import (
	"context"

	"github.com/coolair/servantus/core"
)

// Row is one aggregated result returned by the analytics queries.
// Hour is only set for time-bucketed aggregations and uses the
// "2006-01-02 15:00" layout in UTC.
type Row struct {
	Hour  string `json:"hour,omitempty"`
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Sink accepts derived metric records from the enrichment pipeline.
type Sink interface {
	// IngestBatch appends records atomically; either all records of the
	// batch are stored or none are.
	IngestBatch(ctx context.Context, records []core.MetricRecord) error
}

// Querier aggregates ingested records for the analytics API.
type Querier interface {
	// CountByValue returns per-value counts for one metric kind, largest
	// count first.
	CountByValue(ctx context.Context, metric core.MetricKind) ([]Row, error)

	// CountByHour returns per-hour, per-value counts for one metric kind
	// over the observed time range, in chronological order. Hours with no
	// records still appear with zero counts so charts render contiguous
	// axes.
	CountByHour(ctx context.Context, metric core.MetricKind) ([]Row, error)

	// TopValues returns the n most frequent values for one metric kind.
	TopValues(ctx context.Context, metric core.MetricKind, n int) ([]Row, error)

	// TopUsers returns the n users with the most question records.
	TopUsers(ctx context.Context, n int) ([]Row, error)
}

// Store combines ingestion and querying over one backing dataset.
type Store interface {
	Sink
	Querier
}
