// Package dialog drives one end-to-end question/answer turn.
//
// The Orchestrator is durability-first: each turn persists its question
// before retrieval, its retained search results before generation, and its
// answer after generation, so losing a later step never erases evidence of
// earlier ones. Persistence failures on this audit trail are logged and
// absorbed; only generation failure is surfaced to the caller.
//
// The History reconstructor rebuilds bounded question/answer pairs for a
// user from the event store using window-bounded, dialog-id-matched greedy
// pairing. A question without a matching answer inside the fetched window
// is silently skipped. History is an enhancement, not a correctness
// requirement: any store failure yields an empty history.
package dialog
