// Package app is kulku's composition root.
//
// # Overview
//
// Run loads the configuration, opens the log file, builds the Digitransit
// client and then walks the user through three views in order:
//
//  1. Origin search
//  2. Destination search
//  3. Itinerary view for the chosen pair
//
// # View Ownership
//
// Every view gets its own state.Store and exactly one background task,
// started through lifecycle.Start right before the view opens and stopped
// right after it closes:
//
//	┌──────────────────┐   Start    ┌──────────────────────┐
//	│ searchOnce()     │──────────> │ refresh.Debouncer    │
//	│  ui.RunSearch()  │ <── store  │  client.Search()     │
//	│  handle.Stop()   │──────────> │  (cancelled)         │
//	└──────────────────┘            └──────────────────────┘
//
//	┌──────────────────┐   Start    ┌──────────────────────┐
//	│ watchItineraries │──────────> │ refresh.Poller       │
//	│  ui.RunItin...() │ <── store  │  client.Plan()       │
//	│  handle.Stop()   │──────────> │  (cancelled)         │
//	└──────────────────┘            └──────────────────────┘
//
// Stop returns only once the task can no longer write to its store, so no
// task outlives its view and nothing leaks into the next one.
//
// # Error Handling
//
// Returned from Run:
//   - Configuration errors (bad TOML, unreadable key file)
//   - Task failures (*lifecycle.Error), including recovered panics
//
// Handled inside:
//   - ui.ErrNoSelection: the search view opens again with the text typed so
//     far
//   - ui.ErrCanceled and context cancellation: Run returns nil
//   - Failed fetches: logged by the engines, the view keeps its last results
//
// # Logging
//
// Logs go to the configured file through log/slog's text handler; each view's
// records carry a view attribute. When the file cannot be opened logging is
// silently disabled.
package app
