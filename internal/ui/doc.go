// Package ui implements kulku's two terminal views on Bubble Tea.
//
// # Views
//
//   - Search view (SearchModel, RunSearch): a text input titled "Origin" or
//     "Destination" above a "Locations" list of geocoding candidates.
//   - Itinerary view (ItineraryModel, RunItineraries): a header with the
//     route and an Updating.../Idle indicator, then one bordered box per
//     itinerary, as many as fit the terminal.
//
// # Frame Loop
//
// Each view schedules a frame message every FrameInterval (16ms by default).
// On every frame the model copies a snapshot out of its state.Store and
// renders from that copy only. The models never perform network I/O; the
// background task that fills the store is owned by the caller.
//
// The search view writes every edit of its text input into a refresh.Text
// and pings a refresh.Signal so the search task wakes up. Selection is local
// to the model and is cleared whenever the store's version changes, so a
// highlighted row always refers to the result list it was picked from.
//
// # Itinerary Layout
//
// Legs are drawn as three-line blocks (departure stop, mode and duration,
// arrival stop) whose width is the leg's share of the itinerary duration.
// Legs of a minute or less are left out of the drawing.
//
// # Key Bindings
//
// Search view:
//   - Typing, Backspace: edit the query
//   - Up/Down: move the selection, wrapping at either end
//   - Enter: choose the selected location (ErrNoSelection when none)
//   - Esc, Ctrl+C: abort (ErrCanceled)
//   - Ctrl+T: cycle theme
//
// Itinerary view:
//   - q, Esc, Ctrl+C: leave
//   - T: cycle theme
//   - ?: toggle full help
package ui
