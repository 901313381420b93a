package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEvent(t *testing.T) {
	t.Run("valid question", func(t *testing.T) {
		event := &Event{
			UserID:  "user-1",
			Step:    StepQuestion,
			Content: "What AC models do you have?",
		}
		require.NoError(t, ValidateEvent(event))
	})

	t.Run("nil event", func(t *testing.T) {
		err := ValidateEvent(nil)
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("empty content", func(t *testing.T) {
		err := ValidateEvent(&Event{UserID: "user-1", Step: StepQuestion})
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("empty user id", func(t *testing.T) {
		err := ValidateEvent(&Event{Step: StepQuestion, Content: "hi"})
		assert.ErrorIs(t, err, ErrEmptyUserID)
	})

	t.Run("unknown step", func(t *testing.T) {
		err := ValidateEvent(&Event{UserID: "u", Step: Step("greeting"), Content: "hi"})
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("unknown sentiment", func(t *testing.T) {
		event := &Event{UserID: "u", Step: StepAnswer, Content: "hi"}
		event.Meta.Sentiment = Sentiment("mixed")
		err := ValidateEvent(event)
		assert.ErrorIs(t, err, ErrInvalidSentiment)
	})
}

func TestEventProcessed(t *testing.T) {
	event := &Event{UserID: "u", Step: StepQuestion, Content: "hi"}
	assert.False(t, event.Processed())

	event.Meta.Sentiment = SentimentNeutral
	assert.True(t, event.Processed())
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestValidateMetricKind(t *testing.T) {
	for _, k := range []MetricKind{MetricSentiment, MetricLanguage, MetricKeyword, MetricOther} {
		assert.NoError(t, ValidateMetricKind(k))
	}
	assert.ErrorIs(t, ValidateMetricKind(MetricKind("bogus")), ErrInvalidMetricKind)
}
