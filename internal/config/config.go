package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields recdeck needs to reach the CV backend.
type Config struct {
	APIBase     string
	PollSeconds int
}

const (
	defaultConfigPath  = "~/.config/recdeck/config.toml"
	defaultAPIBase     = "http://127.0.0.1:8000"
	defaultPollSeconds = 5

	// envAPIBase overrides the configured base URL; handy for pointing a
	// session at the stub server without touching the config file.
	envAPIBase = "RECDECK_API_BASE"
)

// Load locates and parses the recdeck config, falling back to defaults
// when missing. The RECDECK_API_BASE environment variable wins over the
// file in either case.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBase: defaultAPIBase, PollSeconds: defaultPollSeconds}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase     string `toml:"api_base"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}

	return applyEnv(cfg), nil
}

// PollInterval returns the poll cadence as a duration.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

func applyEnv(cfg Config) Config {
	if base := strings.TrimSpace(os.Getenv(envAPIBase)); base != "" {
		cfg.APIBase = base
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
