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

// Named report identifiers accepted by Service.Query.
const (
	ReportSentiment     = "sentiment"
	ReportSentimentTime = "sentiment_time"
	ReportLanguages     = "languages"
	ReportTopPhrases    = "top_phrases"
	ReportTopUsers      = "top_users"
)

const (
	topPhrasesLimit = 20
	topUsersLimit   = 10
)

// Service maps named reports onto querier aggregations.
type Service struct {
	querier Querier
}

// NewService creates the analytics query service.
func NewService(querier Querier) (*Service, error) {
	if querier == nil {
		return nil, ErrQuerierRequired
	}
	return &Service{querier: querier}, nil
}

// Query runs the named report. An unknown report name yields an empty
// result, not an error, so callers can probe reports without failing.
func (s *Service) Query(ctx context.Context, report string) ([]Row, error) {
	switch report {
	case ReportSentiment:
		return s.querier.CountByValue(ctx, core.MetricSentiment)
	case ReportSentimentTime:
		return s.querier.CountByHour(ctx, core.MetricSentiment)
	case ReportLanguages:
		return s.querier.CountByValue(ctx, core.MetricLanguage)
	case ReportTopPhrases:
		return s.querier.TopValues(ctx, core.MetricKeyword, topPhrasesLimit)
	case ReportTopUsers:
		return s.querier.TopUsers(ctx, topUsersLimit)
	default:
		return []Row{}, nil
	}
}
