package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolair/servantus/ai/mock"
	"github.com/coolair/servantus/core"
	"github.com/coolair/servantus/retrieval"
	"github.com/coolair/servantus/store"
	storebadger "github.com/coolair/servantus/store/badger"
)

// stubSearcher is a configurable retrieval.Searcher test double.
type stubSearcher struct {
	searchFunc func(ctx context.Context, query string, top int) ([]retrieval.ScoredDocument, error)

	calls     int
	lastQuery string
	lastTop   int
}

func (s *stubSearcher) Search(ctx context.Context, query string, top int) ([]retrieval.ScoredDocument, error) {
	s.calls++
	s.lastQuery = query
	s.lastTop = top
	if s.searchFunc != nil {
		return s.searchFunc(ctx, query, top)
	}
	return nil, nil
}

func fixedDocs(docs ...retrieval.ScoredDocument) *stubSearcher {
	return &stubSearcher{
		searchFunc: func(ctx context.Context, query string, top int) ([]retrieval.ScoredDocument, error) {
			return docs, nil
		},
	}
}

func setupOrchestrator(t *testing.T, searcher retrieval.Searcher) (*Orchestrator, store.EventStore, *mock.Generator) {
	t.Helper()
	events, err := storebadger.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })

	generator := mock.NewGenerator()
	orch, err := NewOrchestrator(events, searcher, generator, nil)
	require.NoError(t, err)
	return orch, events, generator
}

func TestNewOrchestrator_RequiresDependencies(t *testing.T) {
	events, err := storebadger.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })

	_, err = NewOrchestrator(nil, &stubSearcher{}, mock.NewGenerator(), nil)
	assert.ErrorIs(t, err, ErrEventStoreRequired)

	_, err = NewOrchestrator(events, nil, mock.NewGenerator(), nil)
	assert.ErrorIs(t, err, ErrSearcherRequired)

	_, err = NewOrchestrator(events, &stubSearcher{}, nil, nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestHandleTurn_ValidatesRequest(t *testing.T) {
	orch, _, _ := setupOrchestrator(t, &stubSearcher{})

	_, err := orch.HandleTurn(context.Background(), &TurnRequest{Question: "hello"})
	assert.ErrorIs(t, err, ErrUserIDRequired)

	_, err = orch.HandleTurn(context.Background(), &TurnRequest{UserID: "alice", Question: "  "})
	assert.ErrorIs(t, err, ErrQuestionRequired)
}

func TestHandleTurn_FullTurn(t *testing.T) {
	searcher := fixedDocs(
		retrieval.ScoredDocument{Content: "Model A costs 400.", Score: 0.9, Source: "pricing.md"},
		retrieval.ScoredDocument{Content: "Model B costs 700.", Score: 0.85, Source: "pricing.md"},
	)
	orch, events, generator := setupOrchestrator(t, searcher)
	generator.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Model A is the cheapest at 400.", nil
	}

	result, err := orch.HandleTurn(context.Background(), &TurnRequest{
		UserID:   "alice",
		Question: "Which model is cheapest?",
	})
	require.NoError(t, err)

	assert.Equal(t, "Model A is the cheapest at 400.", result.Answer)
	assert.Equal(t, []string{"pricing.md"}, result.SourceDocuments)
	assert.Contains(t, result.SearchSnippet, "Model A costs 400.")
	assert.Contains(t, result.SearchSnippet, retrieval.ContentSeparator)
	require.NotNil(t, result.GenerationMS)
	assert.GreaterOrEqual(t, *result.GenerationMS, int64(0))

	assert.Equal(t, DefaultSearchTop, searcher.lastTop)
	assert.Contains(t, generator.LastPrompt(), "Which model is cheapest?")

	// Question, both search results and the answer are all persisted.
	recent, err := events.RecentByUser(context.Background(), "alice", nil, 10)
	require.NoError(t, err)
	require.Len(t, recent, 4)

	byStep := make(map[core.Step][]*core.Event)
	for _, event := range recent {
		byStep[event.Step] = append(byStep[event.Step], event)
	}
	require.Len(t, byStep[core.StepQuestion], 1)
	require.Len(t, byStep[core.StepSearchResult], 2)
	require.Len(t, byStep[core.StepAnswer], 1)

	question := byStep[core.StepQuestion][0]
	assert.Equal(t, core.DefaultQuestionLang, question.Meta.Lang)

	answer := byStep[core.StepAnswer][0]
	assert.Equal(t, core.DefaultAnswerLang, answer.Meta.Lang)
	require.NotNil(t, answer.Meta.LatencyMS)
	assert.GreaterOrEqual(t, *answer.Meta.LatencyMS, int64(0))
	assert.Equal(t, question.DialogID, answer.DialogID)

	searchResult := byStep[core.StepSearchResult][0]
	assert.Equal(t, "pricing.md", searchResult.Meta.Source)
	require.NotNil(t, searchResult.Meta.Score)
}

func TestHandleTurn_EmptyRetrievalShortCircuits(t *testing.T) {
	orch, events, generator := setupOrchestrator(t, &stubSearcher{})

	result, err := orch.HandleTurn(context.Background(), &TurnRequest{
		UserID:   "alice",
		Question: "anything?",
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultNoResultsAnswer, result.Answer)
	assert.Empty(t, result.SourceDocuments)
	assert.Empty(t, result.SearchSnippet)
	assert.Zero(t, generator.CompleteCalls())

	// Only the question event is persisted.
	recent, err := events.RecentByUser(context.Background(), "alice", nil, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, core.StepQuestion, recent[0].Step)
}

func TestHandleTurn_RelevanceBandFiltersDocuments(t *testing.T) {
	searcher := fixedDocs(
		retrieval.ScoredDocument{Content: "doc one", Score: 0.9, Source: "one.md"},
		retrieval.ScoredDocument{Content: "doc two", Score: 0.75, Source: "two.md"},
		retrieval.ScoredDocument{Content: "doc three", Score: 0.5, Source: "three.md"},
	)
	orch, _, generator := setupOrchestrator(t, searcher)

	result, err := orch.HandleTurn(context.Background(), &TurnRequest{
		UserID:   "alice",
		Question: "hello?",
	})
	require.NoError(t, err)

	// 0.75 >= 0.8*0.9, 0.5 is below the band.
	assert.Equal(t, []string{"one.md", "two.md"}, result.SourceDocuments)
	assert.NotContains(t, result.SearchSnippet, "doc three")

	prompt := generator.LastPrompt()
	assert.Contains(t, prompt, knowledgeHeading)
	assert.Contains(t, prompt, "doc one")
	assert.Contains(t, prompt, "doc two")
	assert.NotContains(t, prompt, "doc three")
	assert.NotContains(t, prompt, historyHeading)
}

func TestHandleTurn_SearchFailureAborts(t *testing.T) {
	searcher := &stubSearcher{
		searchFunc: func(ctx context.Context, query string, top int) ([]retrieval.ScoredDocument, error) {
			return nil, errors.New("backend down")
		},
	}
	orch, _, generator := setupOrchestrator(t, searcher)

	_, err := orch.HandleTurn(context.Background(), &TurnRequest{UserID: "alice", Question: "hi"})
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Zero(t, generator.CompleteCalls())
}

func TestHandleTurn_GenerationFailureAborts(t *testing.T) {
	searcher := fixedDocs(retrieval.ScoredDocument{Content: "doc", Score: 1, Source: "s"})
	orch, _, generator := setupOrchestrator(t, searcher)
	generator.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model offline")
	}

	_, err := orch.HandleTurn(context.Background(), &TurnRequest{UserID: "alice", Question: "hi"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestHandleTurn_BlankDocumentsSkipGeneration(t *testing.T) {
	searcher := fixedDocs(retrieval.ScoredDocument{Content: "   ", Score: 1, Source: "blank.md"})
	orch, _, generator := setupOrchestrator(t, searcher)

	result, err := orch.HandleTurn(context.Background(), &TurnRequest{UserID: "alice", Question: "hi"})
	require.NoError(t, err)

	assert.Equal(t, DefaultNoKnowledgeAnswer, result.Answer)
	assert.Nil(t, result.GenerationMS)
	assert.Zero(t, generator.CompleteCalls())
}

func TestHandleTurn_HistoryFeedsQueryAndPrompt(t *testing.T) {
	searcher := fixedDocs(retrieval.ScoredDocument{Content: "Model A costs 400.", Score: 1, Source: "pricing.md"})
	orch, events, generator := setupOrchestrator(t, searcher)

	base := time.Now().UTC().Add(-time.Minute)
	writeEvent(t, events, "alice", "d1", core.StepQuestion, "do you sell Model A?", base)
	writeEvent(t, events, "alice", "d1", core.StepAnswer, "yes we do", base.Add(time.Second))

	_, err := orch.HandleTurn(context.Background(), &TurnRequest{
		UserID:   "alice",
		Question: "how much is it?",
		DialogID: "d1",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"previous dialog: do you sell Model A? yes we do. current question: how much is it?",
		searcher.lastQuery)
	assert.Contains(t, generator.LastPrompt(), historyHeading)
	assert.Contains(t, generator.LastPrompt(), "Servantus: yes we do")
}

func TestHandleTurn_ProvidedDialogAndLangAreKept(t *testing.T) {
	searcher := fixedDocs(retrieval.ScoredDocument{Content: "doc", Score: 1, Source: "s"})
	orch, events, _ := setupOrchestrator(t, searcher)

	_, err := orch.HandleTurn(context.Background(), &TurnRequest{
		UserID:   "alice",
		Question: "Скільки коштує?",
		DialogID: "dialog-42",
		Lang:     "uk",
	})
	require.NoError(t, err)

	recent, err := events.RecentByUser(context.Background(), "alice", []core.Step{core.StepQuestion}, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "dialog-42", recent[0].DialogID)
	assert.Equal(t, "uk", recent[0].Meta.Lang)
}

func TestHandleTurn_MintsDialogID(t *testing.T) {
	searcher := fixedDocs(retrieval.ScoredDocument{Content: "doc", Score: 1, Source: "s"})
	orch, events, _ := setupOrchestrator(t, searcher)

	_, err := orch.HandleTurn(context.Background(), &TurnRequest{UserID: "alice", Question: "hi"})
	require.NoError(t, err)

	recent, err := events.RecentByUser(context.Background(), "alice", nil, 10)
	require.NoError(t, err)
	require.NotEmpty(t, recent)
	dialogID := recent[0].DialogID
	assert.NotEmpty(t, dialogID)
	for _, event := range recent {
		assert.Equal(t, dialogID, event.DialogID)
	}
}
