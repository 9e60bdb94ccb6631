// Package state provides the thread-safe result store shared between a view's
// background fetch task and the render loop.
//
// # Overview
//
// Every interactive view (origin search, destination search, itinerary
// polling) owns exactly one Store. The background task is the only writer;
// the render loop reads a Snapshot on every frame.
//
//	Writer (task):                 Reader (render loop):
//	┌──────────────────┐          ┌───────────────────┐
//	│ SetFetching(true)│          │                   │
//	│ fetch ...        │          │ store.Snapshot()  │
//	│ Replace(items)   │─────────→│   ↓               │
//	│ SetFetching(false│  (mutex) │ draw frame        │
//	└──────────────────┘          └───────────────────┘
//
// # Update Semantics
//
// Replace swaps the whole result set and bumps Version. There is no partial
// merge, so a reader sees either the old or the new list, never a mix. A
// failed fetch simply does not call Replace and the previous list stays
// visible. Errors never pass through the store.
//
// Version starts at zero and only grows. The render loop compares it with the
// version it saw last to notice new data without comparing contents, which is
// how selection cursors know to reset.
//
// # Concurrency Model
//
// A sync.RWMutex guards the fields. The lock is held only while copying
// slices, never across network I/O, so readers never wait behind a request.
// Items are copied on the way in and on the way out; callers may keep or
// modify the returned slice freely.
//
// # Testing Considerations
//
// The zero value is ready to use:
//
//	var store state.Store[digitransit.Candidate]
//	store.Replace(candidates)
//	snap := store.Snapshot() // snap.Version == 1
package state
