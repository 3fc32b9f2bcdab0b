package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/noamzr/recdeck/internal/config"
	"github.com/noamzr/recdeck/internal/cvapi"
	"github.com/noamzr/recdeck/internal/prefs"
	"github.com/noamzr/recdeck/internal/state"
	"github.com/noamzr/recdeck/internal/ui"
)

// Options configure the recdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/recdeck/prefs.toml
	APIBase    string // overrides the configured backend URL
	PollEvery  int    // seconds; zero uses the configured cadence
}

// Run boots the recdeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	apiBase := cfg.APIBase
	if opts.APIBase != "" {
		apiBase = opts.APIBase
	}

	client, err := cvapi.NewClient(apiBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := state.New(client)
	if userPrefs.View == prefs.ViewDeleted {
		store.SetView(state.ViewDeleted)
	}

	// Cadence precedence: flag, then prefs override, then config.
	interval := cfg.PollInterval()
	if userPrefs.PollSeconds > 0 {
		interval = time.Duration(userPrefs.PollSeconds) * time.Second
	}
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Populate the store before the UI starts; a failure here is not
	// fatal, the error banner and the poller's retries take it from
	// there.
	if err := store.FetchAll(ctx); err != nil {
		log.Printf("initial fetch failed: %v", err)
	}

	poller := NewPoller(interval, store.SilentRefresh)
	poller.Start(ctx)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Poller:    poller,
		PollTick:  time.Second,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
