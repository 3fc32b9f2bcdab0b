// Package config handles loading and parsing recdeck configuration files.
//
// # Overview
//
// This package reads recdeck's TOML configuration to discover the CV
// backend's base URL and the background sync cadence. The config is small
// on purpose: everything else the app needs comes from the backend itself.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/recdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. RECDECK_API_BASE, when set, overrides api_base from any source
//
// # Default Values
//
//   - Config file: ~/.config/recdeck/config.toml
//   - API base URL: http://127.0.0.1:8000
//   - Poll cadence: 5 seconds
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "http://127.0.0.1:8000"
//	poll_seconds = 5
//
// Both fields are optional. Tilde expansion is performed on the config
// path automatically.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows recdeck to work out-of-the-box against a local backend.
//
// # Usage Example
//
//	// Use default config path
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//
//	// Access configuration
//	client, err := cvapi.NewClient(cfg.APIBase)
//	interval := cfg.PollInterval()
//
// # Design Philosophy
//
// This package follows the principle of sensible defaults. recdeck should
// work immediately against a backend on the default local port, without
// requiring any configuration file to exist.
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
