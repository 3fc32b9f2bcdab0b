// Package state provides thread-safe candidate state management for the
// recdeck application.
//
// # Overview
//
// This package implements the store that holds the canonical client-side
// copy of the candidate pipeline: the candidate list, the active selection,
// the view and filter criteria, and sync metadata. It is the coordination
// point where background polling, user actions, and UI rendering meet.
//
// # Architecture
//
// The package follows a producer-consumer pattern with two producers:
//
//	Producers:                        Consumer (UI):
//	┌──────────────────────┐         ┌────────────────┐
//	│ Poller               │         │                │
//	│   SilentRefresh()    │────────→│ store.Snapshot()│
//	│ User actions         │ (mutex) │      ↓         │
//	│   FetchAll, Update*, │────────→│  render UI     │
//	│   Delete, Select ... │         │                │
//	└──────────────────────┘         └────────────────┘
//
// The Store mediates between these goroutines, ensuring:
//   - Atomic updates (no partial/torn reads)
//   - No data races (mutex-protected access)
//   - Immutable snapshots (defensive copying)
//
// The lock is never held across network I/O: actions read what they need
// under the lock, perform the request unlocked, then reacquire to commit.
//
// # Foreground vs Background Sync
//
// Every fetch exists in two flavors with different visibility rules:
//
//	// Foreground (user pressed refresh, changed filters, ...):
//	store.FetchAll(ctx)
//	→ IsLoading flips for spinner display
//	→ list replaced wholesale
//	→ failure lands in the Error field
//
//	// Background (poller tick):
//	store.SilentRefresh(ctx)
//	→ IsSyncing flips instead of IsLoading
//	→ commit only when the change detector sees a real difference
//	→ failure is returned to the caller but never surfaces in Error;
//	  the previous list stays on screen (stale beats broken)
//
// The no-commit path keeps the exact same candidates slice, so a quiet
// poll cycle is invisible to the UI: same identity, no re-render, no
// flicker. When a commit does happen, Reconcile carries the transient
// annotations (IsNew, StatusChangedAt, NewAnswersAt) forward by id, since
// the backend knows nothing about them.
//
// # Selection Semantics
//
// Select(id) clears the selected candidate's transient annotations and
// commits the clear to the stored list. Viewing acknowledges the badges,
// and because the clear is committed, the next poll's reconciliation
// copies the cleared values forward instead of resurrecting them.
//
// Any wholesale list replacement drops a selection whose id is no longer
// present, so the UI can never render a detail pane for a candidate that
// was deleted remotely or filtered out.
//
// # Server Authority
//
// Mutations are pessimistic: nothing changes locally until the backend's
// canonical record comes back. UpdateStatus in particular requests a
// transition and then swaps in whatever status the backend actually
// assigned, which may differ from the one requested.
//
// # Error Propagation
//
// User-initiated actions record failures in the Error field for display
// and return the error. Background syncs never touch Error; they bump
// ConsecutiveFailures instead, and IsOffline() reports true after two
// misses so the header can show a connectivity warning.
//
// # Design Rationale
//
// This package intentionally avoids:
//   - Channels (mutex is simpler for few writers/multiple readers)
//   - Incremental list patching (full replacement plus reconcile is easier)
//   - Optimistic updates (the backend owns the status machine)
//   - Pub/sub (the UI polls snapshots on its own schedule)
//
// This is appropriate for recdeck's scale (hundreds of candidates, one
// poll every few seconds).
package state
