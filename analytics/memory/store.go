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

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/coolair/servantus/analytics"
	"github.com/coolair/servantus/core"
)

const hourLayout = "2006-01-02 15:00"

// Store is an in-memory analytics.Store.
type Store struct {
	mu      sync.RWMutex
	records []core.MetricRecord
	closed  bool
}

// NewStore creates an empty in-memory analytics store.
func NewStore() *Store {
	return &Store{}
}

// IngestBatch validates and appends the batch. Validation runs before any
// append, so a bad record rejects the whole batch.
func (s *Store) IngestBatch(ctx context.Context, records []core.MetricRecord) error {
	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return analytics.ErrSinkClosed
	}
	s.records = append(s.records, records...)
	return nil
}

// CountByValue returns per-value counts for the metric, largest first.
func (s *Store) CountByValue(ctx context.Context, metric core.MetricKind) ([]analytics.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for i := range s.records {
		if s.records[i].Metric == metric {
			counts[s.records[i].Value]++
		}
	}
	return sortedRows(counts, 0), nil
}

// CountByHour buckets the metric's records per hour and value. Hours inside
// the observed range with no records are emitted with zero counts for every
// value seen anywhere in the range.
func (s *Store) CountByHour(ctx context.Context, metric core.MetricKind) ([]analytics.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type bucket struct {
		hour  time.Time
		value string
	}
	counts := make(map[bucket]int64)
	values := make(map[string]struct{})
	var first, last time.Time
	for i := range s.records {
		record := &s.records[i]
		if record.Metric != metric {
			continue
		}
		hour := record.TimeGenerated.UTC().Truncate(time.Hour)
		counts[bucket{hour, record.Value}]++
		values[record.Value] = struct{}{}
		if first.IsZero() || hour.Before(first) {
			first = hour
		}
		if hour.After(last) {
			last = hour
		}
	}
	if len(counts) == 0 {
		return []analytics.Row{}, nil
	}

	labels := make([]string, 0, len(values))
	for value := range values {
		labels = append(labels, value)
	}
	sort.Strings(labels)

	var rows []analytics.Row
	for hour := first; !hour.After(last); hour = hour.Add(time.Hour) {
		for _, label := range labels {
			rows = append(rows, analytics.Row{
				Hour:  hour.Format(hourLayout),
				Label: label,
				Value: counts[bucket{hour, label}],
			})
		}
	}
	return rows, nil
}

// TopValues returns the n most frequent values for the metric.
func (s *Store) TopValues(ctx context.Context, metric core.MetricKind, n int) ([]analytics.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for i := range s.records {
		if s.records[i].Metric == metric {
			counts[s.records[i].Value]++
		}
	}
	return sortedRows(counts, n), nil
}

// TopUsers returns the n users with the most distinct question events.
func (s *Store) TopUsers(ctx context.Context, n int) ([]analytics.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Distinct message ids per user: each enriched event fans out into
	// several records, which must not inflate the count.
	seen := make(map[string]struct{})
	counts := make(map[string]int64)
	for i := range s.records {
		record := &s.records[i]
		if record.MessageType != core.StepQuestion {
			continue
		}
		key := record.UserID + "\x00" + record.MessageID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		counts[record.UserID]++
	}
	return sortedRows(counts, n), nil
}

// Len reports how many records are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close rejects further ingestion. Queries keep working.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func validateRecord(record *core.MetricRecord) error {
	if record.Value == "" {
		return fmt.Errorf("%w: empty value", analytics.ErrInvalidRecord)
	}
	if err := core.ValidateMetricKind(record.Metric); err != nil {
		return fmt.Errorf("%w: %w", analytics.ErrInvalidRecord, err)
	}
	return nil
}

// sortedRows orders counts largest first, ties broken by label, truncated
// to n when n > 0.
func sortedRows(counts map[string]int64, n int) []analytics.Row {
	rows := make([]analytics.Row, 0, len(counts))
	for label, value := range counts {
		rows = append(rows, analytics.Row{Label: label, Value: value})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Label < rows[j].Label
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
