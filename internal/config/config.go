// Package config loads and saves financial snapshots as TOML files and
// manages the snapshot directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"finplan/internal/model"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the current snapshot's filename inside Dir().
const DefaultFile = "finplan.toml"

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finplan")
}

// DefaultPath returns the full path to the current snapshot.
func DefaultPath() string {
	return filepath.Join(Dir(), DefaultFile)
}

// Exists reports whether a snapshot exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads and validates a snapshot. Validation failures surface here,
// before any computation can run against the snapshot.
func Load(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	cfg := model.Config{Settings: model.DefaultSettings()}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if err := model.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating snapshot %s: %w", filepath.Base(path), err)
	}

	return &cfg, nil
}

// Save validates and writes a snapshot to disk, creating the directory
// if needed.
func Save(cfg *model.Config, path string) error {
	if err := model.Validate(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
