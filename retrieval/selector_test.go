package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRelevant(t *testing.T) {
	t.Run("band retains docs within fraction of max", func(t *testing.T) {
		docs := []ScoredDocument{
			{Content: "a", Score: 0.9},
			{Content: "b", Score: 0.75},
			{Content: "c", Score: 0.5},
		}

		// threshold = 0.8 * 0.9 = 0.72
		selected := SelectRelevant(docs, 0.8)
		require.Len(t, selected, 2)
		assert.Equal(t, "a", selected[0].Content)
		assert.Equal(t, "b", selected[1].Content)
	})

	t.Run("top document always retained", func(t *testing.T) {
		docs := []ScoredDocument{
			{Content: "only", Score: 0.001},
		}
		selected := SelectRelevant(docs, 0.8)
		require.Len(t, selected, 1)
	})

	t.Run("every retained score within band", func(t *testing.T) {
		docs := []ScoredDocument{
			{Score: 3.0}, {Score: 2.9}, {Score: 2.3}, {Score: 1.0}, {Score: 2.41},
		}
		selected := SelectRelevant(docs, 0.8)
		require.NotEmpty(t, selected)
		for _, doc := range selected {
			assert.GreaterOrEqual(t, doc.Score, 0.8*3.0)
		}
	})

	t.Run("empty input empty output", func(t *testing.T) {
		assert.Empty(t, SelectRelevant(nil, 0.8))
		assert.Empty(t, SelectRelevant([]ScoredDocument{}, 0.8))
	})

	t.Run("rank order preserved", func(t *testing.T) {
		docs := []ScoredDocument{
			{Content: "first", Score: 0.85},
			{Content: "second", Score: 0.9},
		}
		selected := SelectRelevant(docs, 0.8)
		require.Len(t, selected, 2)
		assert.Equal(t, "first", selected[0].Content)
	})
}

func TestJoinContent(t *testing.T) {
	docs := []ScoredDocument{
		{Content: "inverter units"},
		{Content: "portable units"},
	}
	assert.Equal(t, "inverter units\n\n---\n\nportable units", JoinContent(docs))
	assert.Equal(t, "", JoinContent(nil))
}

func TestSources(t *testing.T) {
	docs := []ScoredDocument{
		{Source: "catalog.pdf"},
		{Source: ""},
		{Source: "manual.pdf"},
		{Source: "catalog.pdf"},
	}
	assert.Equal(t, []string{"catalog.pdf", "manual.pdf"}, Sources(docs))
}
