package store

import (
	"context"

	"github.com/coolair/servantus/core"
)

// EventStore provides persistence for dialog events.
// Implementations must be thread-safe and support concurrent access.
type EventStore interface {
	// Create persists a new event. Mints an ID when absent and assigns the
	// write-time timestamp. Returns the stored event.
	Create(ctx context.Context, event *core.Event) (*core.Event, error)

	// Upsert rewrites an event by ID, creating it if missing. The write is
	// idempotent: retrying a whole enrichment run never duplicates events.
	Upsert(ctx context.Context, event *core.Event) (*core.Event, error)

	// Get retrieves a single event by ID.
	// Returns ErrNotFound if the event doesn't exist.
	Get(ctx context.Context, id string) (*core.Event, error)

	// RecentByUser retrieves up to limit events for a user filtered to the
	// given steps, ordered by recency descending (newest first).
	RecentByUser(ctx context.Context, userID string, steps []core.Step, limit int) ([]*core.Event, error)

	// Unprocessed retrieves up to limit question/answer events that have no
	// sentiment attached yet. This predicate is the enrichment idempotency
	// gate: once meta.sentiment is set an event is never returned again.
	Unprocessed(ctx context.Context, limit int) ([]*core.Event, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
