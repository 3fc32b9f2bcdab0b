// Package app provides the orchestration layer for the recdeck application.
//
// # Overview
//
// This package wires together configuration, polling, state management, and
// the UI to create the complete recdeck TUI experience. It serves as the
// composition root where all dependencies are initialized and connected,
// and it owns the poller that keeps the candidate list in sync with the
// backend.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load recdeck configuration from ~/.config/recdeck/config.toml
//  2. Load user preferences (theme) from ~/.config/recdeck/prefs.toml
//  3. Initialize the HTTP client for the CV backend
//  4. Create the shared state.Store for UI and poller coordination
//  5. Fetch the initial candidate list so the UI does not open empty
//  6. Launch the background poller for continuous sync
//  7. Start the TUI and block until user exits or context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read recdeck config
//	       ├─────> prefs.Load()      Read theme preference
//	       ├─────> cvapi.NewClient() Create HTTP client
//	       ├─────> state.New()       Shared candidate store
//	       ├─────> store.FetchAll()  Initial population
//	       ├─────> poller.Start()    Launch background sync
//	       └─────> ui.Run()          Start TUI (blocks)
//
//	Background Sync Loop:
//	┌─────────────────────────────────────────┐
//	│ Poller goroutine                        │
//	│  └─> store.SilentRefresh()              │
//	│       ├─> list or search the backend    │
//	│       ├─> commit only on real change    │
//	│       └─> UI reads store.Snapshot()     │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The Poller is a small state machine (idle -> scheduled -> polling) with
// three rules:
//
//   - At most one poll in flight: a tick that fires during a slow request
//     is skipped, never queued, so slow responses cannot pile up.
//   - Failures are logged and swallowed; the previous data stays on
//     screen and the delay backs off exponentially (capped at 30s) while
//     the backend stays unreachable.
//   - Pause/Resume track terminal focus: a blurred terminal stops the
//     cadence, and regaining focus polls immediately before the regular
//     cadence takes over.
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - API client initialization failure (malformed base URL)
//
// Recoverable errors (logged, polling continues):
//   - The initial fetch failing (the poller retries)
//   - Periodic sync failures and network timeouts
//
// This ensures recdeck can survive backend restarts or network hiccups.
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	opts := app.Options{
//		ConfigPath: "", // Use default
//		PollEvery:  5,  // 5 second polling
//	}
//
//	if err := app.Run(ctx, opts); err != nil {
//		log.Fatalf("recdeck failed: %v", err)
//	}
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal and focused.
// Business logic lives in domain packages (cvapi, candidate, state, ui).
// The app package simply connects these pieces with sensible defaults for
// the single-recruiter dashboard use case.
package app
