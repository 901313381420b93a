package retrieval

import "context"

// ScoredDocument is one ranked hit from the search service.
type ScoredDocument struct {
	// Content is the document excerpt used as answer context.
	Content string

	// Score is the service's relevance score. Only relative magnitude
	// within one result set is meaningful.
	Score float64

	// Source is the provenance reference of the document, when known.
	Source string
}

// Searcher queries an external search service for scored documents.
// Implementations must be thread-safe for concurrent use.
type Searcher interface {
	// Search returns up to top documents ranked by relevance descending.
	// An empty result is not an error.
	Search(ctx context.Context, query string, top int) ([]ScoredDocument, error)
}
