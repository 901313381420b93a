// Package retrieval provides the knowledge-base search abstraction and the
// relevance band selection applied to ranked results.
//
// The Searcher contract wraps an external search service that returns a
// scored document list; this package does not implement ranking. What it
// does own is the relevance band: given a ranked candidate set, retain
// every document whose score is at least a fixed fraction of the maximum
// score. The fraction-of-max cutoff is scale-invariant across queries with
// different absolute score ranges and always retains the top document.
package retrieval
