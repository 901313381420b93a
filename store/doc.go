// Copyright 2025 CoolAir Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package store provides the event-store abstraction for servantus.
//
// This package defines the EventStore interface that decouples the dialog
// orchestrator and the enrichment pipeline from the storage implementation.
// The store is append-only for events: there is no delete operation, and
// updates happen exclusively through the idempotent Upsert path used by
// enrichment.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the EventStore
// interface to enforce abstraction and enable alternative backends:
//
//	events, err := badger.Open(path)  // returns store.EventStore
//
// Use the in-memory variant in tests:
//
//	events, err := badger.OpenMemory()
//	defer events.Close()
//
// # Thread Safety
//
// Implementations must be thread-safe. Concurrent turns and concurrent
// enrichment runs synchronize only through the store; per-event writes are
// atomic, and no cross-event transactions are offered.
package store
