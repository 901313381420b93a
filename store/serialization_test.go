package store

import (
	"testing"
	"time"

	"github.com/coolair/servantus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoundTrip(t *testing.T) {
	score := 0.91
	event := &core.Event{
		ID:        core.NewID(),
		DialogID:  core.NewID(),
		UserID:    "user-7",
		Step:      core.StepAnswer,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Content:   "We have three inverter models in stock.",
		Meta: core.Meta{
			Lang:      "en",
			Score:     &score,
			Sentiment: core.SentimentPositive,
			SentimentScore: &core.SentimentScore{
				Positive: 0.8, Neutral: 0.15, Negative: 0.05,
			},
			KeyPhrases: []string{"inverter models", "stock"},
		},
	}

	data, err := MarshalEvent(event)
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestUnmarshalEvent_UnknownMetaFields(t *testing.T) {
	// Documents written by newer builds may carry meta fields this build
	// doesn't know about; decoding must not fail.
	data := []byte(`{"id":"e1","dialog_id":"d1","user_id":"u1","step":"question",` +
		`"timestamp":"2025-06-01T12:00:00Z","content":"hi",` +
		`"meta":{"lang":"en","future_field":42}}`)

	event, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, "e1", event.ID)
	assert.Equal(t, "en", event.Meta.Lang)
}

func TestUnmarshalEvent_Garbage(t *testing.T) {
	_, err := UnmarshalEvent([]byte("not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
