package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolair/servantus/core"
)

// recordingQuerier records which aggregation each report dispatched to.
type recordingQuerier struct {
	lastCall   string
	lastMetric core.MetricKind
	lastN      int
}

func (q *recordingQuerier) CountByValue(ctx context.Context, metric core.MetricKind) ([]Row, error) {
	q.lastCall, q.lastMetric = "CountByValue", metric
	return []Row{{Label: "x", Value: 1}}, nil
}

func (q *recordingQuerier) CountByHour(ctx context.Context, metric core.MetricKind) ([]Row, error) {
	q.lastCall, q.lastMetric = "CountByHour", metric
	return []Row{{Hour: "2025-01-01 10:00", Label: "x", Value: 1}}, nil
}

func (q *recordingQuerier) TopValues(ctx context.Context, metric core.MetricKind, n int) ([]Row, error) {
	q.lastCall, q.lastMetric, q.lastN = "TopValues", metric, n
	return nil, nil
}

func (q *recordingQuerier) TopUsers(ctx context.Context, n int) ([]Row, error) {
	q.lastCall, q.lastN = "TopUsers", n
	return nil, nil
}

func TestNewService_RequiresQuerier(t *testing.T) {
	_, err := NewService(nil)
	assert.ErrorIs(t, err, ErrQuerierRequired)
}

func TestService_Query_Dispatch(t *testing.T) {
	tests := []struct {
		report     string
		wantCall   string
		wantMetric core.MetricKind
		wantN      int
	}{
		{ReportSentiment, "CountByValue", core.MetricSentiment, 0},
		{ReportSentimentTime, "CountByHour", core.MetricSentiment, 0},
		{ReportLanguages, "CountByValue", core.MetricLanguage, 0},
		{ReportTopPhrases, "TopValues", core.MetricKeyword, topPhrasesLimit},
		{ReportTopUsers, "TopUsers", "", topUsersLimit},
	}

	for _, tt := range tests {
		t.Run(tt.report, func(t *testing.T) {
			querier := &recordingQuerier{}
			service, err := NewService(querier)
			require.NoError(t, err)

			_, err = service.Query(context.Background(), tt.report)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCall, querier.lastCall)
			assert.Equal(t, tt.wantMetric, querier.lastMetric)
			assert.Equal(t, tt.wantN, querier.lastN)
		})
	}
}

func TestService_Query_UnknownReport(t *testing.T) {
	service, err := NewService(&recordingQuerier{})
	require.NoError(t, err)

	rows, err := service.Query(context.Background(), "velocity")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
