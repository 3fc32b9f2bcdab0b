package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/noamzr/recdeck/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env in the working directory; RECDECK_API_BASE is the
	// interesting variable. A missing file is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "override config path (optional)")
	apiBase := flag.String("api", "", "override backend base URL (optional)")
	pollSeconds := flag.Int("poll", 0, "background sync interval in seconds (optional, defaults to 5s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, APIBase: *apiBase}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "recdeck: %v\n", err)
		return 1
	}
	return 0
}
