package badger

import (
	"context"
	"slices"
	"time"

	"github.com/coolair/servantus/core"
	"github.com/coolair/servantus/store"
	"github.com/dgraph-io/badger/v4"
)

// EventStore implements store.EventStore for BadgerDB.
type EventStore struct {
	backend *Backend
}

var _ store.EventStore = (*EventStore)(nil)

// Open opens a BadgerDB-backed event store at path.
//
// Returns store.EventStore interface to enforce abstraction.
func Open(path string) (store.EventStore, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &EventStore{backend: backend}, nil
}

// Close closes the underlying database.
func (s *EventStore) Close() error {
	return s.backend.Close()
}

// Create persists a new event, minting an ID when absent and assigning the
// write-time timestamp.
func (s *EventStore) Create(ctx context.Context, event *core.Event) (*core.Event, error) {
	if err := core.ValidateEvent(event); err != nil {
		return nil, err
	}
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	if event.ID == "" {
		event.ID = core.NewID()
	}
	event.Timestamp = time.Now().UTC()

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		return s.write(tx, event)
	}, true)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Upsert rewrites an event by ID, creating it if missing. Safe to retry:
// the primary record and all index entries are keyed by ID and timestamp,
// neither of which changes on rewrite.
func (s *EventStore) Upsert(ctx context.Context, event *core.Event) (*core.Event, error) {
	if err := core.ValidateEvent(event); err != nil {
		return nil, err
	}
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	if event.ID == "" {
		event.ID = core.NewID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		return s.write(tx, event)
	}, true)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// write stores the primary record and maintains the recency and pending
// indexes. Must run inside a write transaction.
func (s *EventStore) write(tx *badger.Txn, event *core.Event) error {
	value, err := store.MarshalEvent(event)
	if err != nil {
		return err
	}
	if err := tx.Set(makeEventKey(event.ID), value); err != nil {
		return err
	}
	if err := tx.Set(makeUserKey(event.UserID, event.Timestamp, event.ID), []byte(event.ID)); err != nil {
		return err
	}

	pendingKey := makePendingKey(event.Timestamp, event.ID)
	if eligibleForEnrichment(event) {
		return tx.Set(pendingKey, []byte(event.ID))
	}
	if err := tx.Delete(pendingKey); err != nil && err != badger.ErrKeyNotFound {
		return err
	}
	return nil
}

// eligibleForEnrichment mirrors the enrichment scan predicate: question or
// answer events without sentiment.
func eligibleForEnrichment(event *core.Event) bool {
	if event.Processed() {
		return false
	}
	return event.Step == core.StepQuestion || event.Step == core.StepAnswer
}

// Get retrieves a single event by ID.
func (s *EventStore) Get(ctx context.Context, id string) (*core.Event, error) {
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	var event *core.Event
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEventKey(id))
		if err == badger.ErrKeyNotFound {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			event, err = store.UnmarshalEvent(value)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// RecentByUser retrieves up to limit events for a user filtered to steps,
// newest first. The recency index stores inverted timestamps, so a plain
// forward iteration walks events in reverse chronological order.
func (s *EventStore) RecentByUser(ctx context.Context, userID string, steps []core.Step, limit int) ([]*core.Event, error) {
	if userID == "" || limit <= 0 {
		return nil, store.ErrInvalidQuery
	}
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	var events []*core.Event
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeUserPrefix(userID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			var id string
			if err := it.Item().Value(func(value []byte) error {
				id = string(value)
				return nil
			}); err != nil {
				return err
			}

			event, err := s.getInTx(tx, id)
			if err == store.ErrNotFound {
				continue
			}
			if err != nil {
				return err
			}
			if len(steps) > 0 && !slices.Contains(steps, event.Step) {
				continue
			}
			events = append(events, event)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Unprocessed retrieves up to limit question/answer events without
// sentiment, oldest first. Events processed since their index entry was
// written are skipped.
func (s *EventStore) Unprocessed(ctx context.Context, limit int) ([]*core.Event, error) {
	if limit <= 0 {
		return nil, store.ErrInvalidQuery
	}
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	var events []*core.Event
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(pendingPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			var id string
			if err := it.Item().Value(func(value []byte) error {
				id = string(value)
				return nil
			}); err != nil {
				return err
			}

			event, err := s.getInTx(tx, id)
			if err == store.ErrNotFound {
				continue
			}
			if err != nil {
				return err
			}
			if !eligibleForEnrichment(event) {
				continue
			}
			events = append(events, event)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventStore) getInTx(tx *badger.Txn, id string) (*core.Event, error) {
	item, err := tx.Get(makeEventKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var event *core.Event
	err = item.Value(func(value []byte) error {
		event, err = store.UnmarshalEvent(value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}
