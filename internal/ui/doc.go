// Package ui provides the Bubble Tea terminal interface for recdeck.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model rendering a candidate table with an
// optional detail pane, styled with Lipgloss. All pipeline data comes from
// state.Store snapshots; the UI never talks to the backend directly, it asks
// the store to perform operations and then re-reads the snapshot.
//
// # Package Structure
//
//   - app.go: Model, message types, key handling, commands, and the Run function
//   - header.go: Status header (connectivity, counts, last sync) and command bar
//   - table.go: Candidate table rendering and scroll window
//   - detail.go: Sectioned detail pane for the selected candidate
//   - help.go: Keyboard shortcut overlay
//   - theme.go: Built-in color themes and style construction
//   - style_helpers.go: Background-fill rendering helpers
//
// # Event Flow
//
//  1. Run() builds the Model and starts the Bubble Tea program with focus
//     reporting enabled.
//  2. A 1s tick re-reads the store snapshot so background sync results show
//     up without user input. The poller itself runs independently in
//     internal/app.
//  3. tea.FocusMsg and tea.BlurMsg map terminal focus to poller Resume and
//     Pause, so a hidden terminal stops generating backend traffic.
//  4. Key presses drive store operations (select, filter, status change,
//     delete, restore, triggers); each completed operation schedules a
//     snapshot re-read.
//
// # Cursor vs Selection
//
// The table cursor (j/k navigation) is purely visual and tracked by
// candidate ID so it survives refreshes that reorder the list. Pressing
// enter commits the cursor into a store selection, which opens the detail
// pane and clears the candidate's attention markers.
//
// # External Dependencies
//
//   - state.Store: Snapshots and all candidate operations
//   - candidate: Display labels for statuses and job types
//   - prefs: Theme and view persistence across runs
package ui
