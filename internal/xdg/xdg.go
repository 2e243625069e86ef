// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package xdg resolves the XDG base directories used for riftwalk's config,
// saves and logs.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const appName = "riftwalk"

func base(env string, fallback ...string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", oops.Code("XDG_NO_HOME").With("env", env).Wrapf(err, "resolve home directory")
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...), nil
}

// ConfigDir returns $XDG_CONFIG_HOME/riftwalk, defaulting to ~/.config.
func ConfigDir() (string, error) { return base("XDG_CONFIG_HOME", ".config") }

// DataDir returns $XDG_DATA_HOME/riftwalk, defaulting to ~/.local/share.
func DataDir() (string, error) { return base("XDG_DATA_HOME", ".local", "share") }

// StateDir returns $XDG_STATE_HOME/riftwalk, defaulting to ~/.local/state.
func StateDir() (string, error) { return base("XDG_STATE_HOME", ".local", "state") }

// ConfigFile is the default config file path.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// SavesDir holds the save slots.
func SavesDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "saves"), nil
}

// EnsureDir creates path and its parents with 0700 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return oops.Code("XDG_MKDIR_FAILED").With("path", path).Wrapf(err, "create directory")
	}
	return nil
}
