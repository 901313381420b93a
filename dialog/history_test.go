package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolair/servantus/core"
	"github.com/coolair/servantus/store"
	storebadger "github.com/coolair/servantus/store/badger"
)

func setupHistory(t *testing.T) (*History, store.EventStore) {
	t.Helper()
	events, err := storebadger.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })
	return NewHistory(events, nil), events
}

// writeEvent persists an event with a pinned timestamp so ordering is
// deterministic.
func writeEvent(t *testing.T, events store.EventStore, userID, dialogID string, step core.Step, content string, at time.Time) {
	t.Helper()
	_, err := events.Upsert(context.Background(), &core.Event{
		DialogID:  dialogID,
		UserID:    userID,
		Step:      step,
		Content:   content,
		Timestamp: at,
	})
	require.NoError(t, err)
}

func TestHistory_Reconstruct_PairsInChronologicalOrder(t *testing.T) {
	history, events := setupHistory(t)
	base := time.Now().UTC()

	writeEvent(t, events, "alice", "d1", core.StepQuestion, "first question", base)
	writeEvent(t, events, "alice", "d1", core.StepAnswer, "first answer", base.Add(time.Second))
	writeEvent(t, events, "alice", "d1", core.StepQuestion, "second question", base.Add(2*time.Second))
	writeEvent(t, events, "alice", "d1", core.StepAnswer, "second answer", base.Add(3*time.Second))

	pairs := history.Reconstruct(context.Background(), "alice", 5)
	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{Question: "first question", Answer: "first answer"}, pairs[0])
	assert.Equal(t, Pair{Question: "second question", Answer: "second answer"}, pairs[1])
}

func TestHistory_Reconstruct_SkipsUnansweredQuestion(t *testing.T) {
	history, events := setupHistory(t)
	base := time.Now().UTC()

	writeEvent(t, events, "alice", "d1", core.StepQuestion, "answered", base)
	writeEvent(t, events, "alice", "d1", core.StepAnswer, "the answer", base.Add(time.Second))
	// Latest question has no answer yet; it must not steal an older answer.
	writeEvent(t, events, "alice", "d1", core.StepQuestion, "pending", base.Add(2*time.Second))

	pairs := history.Reconstruct(context.Background(), "alice", 5)
	require.Len(t, pairs, 1)
	assert.Equal(t, "answered", pairs[0].Question)
	assert.Equal(t, "the answer", pairs[0].Answer)
}

func TestHistory_Reconstruct_MatchesWithinDialogOnly(t *testing.T) {
	history, events := setupHistory(t)
	base := time.Now().UTC()

	writeEvent(t, events, "alice", "d1", core.StepQuestion, "d1 question", base)
	writeEvent(t, events, "alice", "d2", core.StepAnswer, "d2 answer", base.Add(time.Second))

	pairs := history.Reconstruct(context.Background(), "alice", 5)
	assert.Empty(t, pairs)
}

func TestHistory_Reconstruct_InterleavedDialogs(t *testing.T) {
	history, events := setupHistory(t)
	base := time.Now().UTC()

	writeEvent(t, events, "alice", "d1", core.StepQuestion, "q1", base)
	writeEvent(t, events, "alice", "d2", core.StepQuestion, "q2", base.Add(time.Second))
	writeEvent(t, events, "alice", "d1", core.StepAnswer, "a1", base.Add(2*time.Second))
	writeEvent(t, events, "alice", "d2", core.StepAnswer, "a2", base.Add(3*time.Second))

	pairs := history.Reconstruct(context.Background(), "alice", 5)
	require.Len(t, pairs, 2)
	assert.Contains(t, pairs, Pair{Question: "q1", Answer: "a1"})
	assert.Contains(t, pairs, Pair{Question: "q2", Answer: "a2"})
}

func TestHistory_Reconstruct_RespectsLimit(t *testing.T) {
	history, events := setupHistory(t)
	base := time.Now().UTC()

	for i := 0; i < 4; i++ {
		offset := time.Duration(i*2) * time.Second
		writeEvent(t, events, "alice", "d1", core.StepQuestion, "question", base.Add(offset))
		writeEvent(t, events, "alice", "d1", core.StepAnswer, "answer", base.Add(offset+time.Second))
	}

	pairs := history.Reconstruct(context.Background(), "alice", 2)
	assert.Len(t, pairs, 2)
}

func TestHistory_Reconstruct_UnknownUser(t *testing.T) {
	history, _ := setupHistory(t)

	pairs := history.Reconstruct(context.Background(), "nobody", 5)
	assert.Empty(t, pairs)
}

func TestHistory_Reconstruct_StoreFailureIsFailOpen(t *testing.T) {
	events, err := storebadger.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, events.Close())

	history := NewHistory(events, nil)
	pairs := history.Reconstruct(context.Background(), "alice", 5)
	assert.Empty(t, pairs)
}

func TestHistory_Reconstruct_ZeroLimit(t *testing.T) {
	history, _ := setupHistory(t)
	assert.Empty(t, history.Reconstruct(context.Background(), "alice", 0))
}
