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

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
)

// Scheduler triggers pipeline runs on a fixed interval. Runs execute on a
// single-worker pool in nonblocking mode, so a tick that arrives while a
// run is still in flight is dropped instead of queueing up behind it.
type Scheduler struct {
	pipeline *Pipeline
	interval time.Duration
	pool     *ants.Pool
	logger   *slog.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewScheduler creates a scheduler for the pipeline. Interval must be
// positive.
func NewScheduler(pipeline *Pipeline, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	if interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		pipeline: pipeline,
		interval: interval,
		pool:     pool,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins ticking until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.submit(ctx)
			}
		}
	}()
}

func (s *Scheduler) submit(ctx context.Context) {
	err := s.pool.Submit(func() {
		if _, err := s.pipeline.Run(ctx, 0); err != nil {
			s.logger.Error("scheduled enrichment run failed", "error", err)
		}
	})
	if errors.Is(err, ants.ErrPoolOverload) {
		s.logger.Debug("previous enrichment run still in flight, tick skipped")
	} else if err != nil {
		s.logger.Error("failed to submit enrichment run", "error", err)
	}
}

// Stop halts ticking and releases the worker pool. An in-flight run is
// given until its own context expires.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
	s.pool.Release()
}
