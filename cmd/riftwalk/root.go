// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/riftwalk/riftwalk/internal/config"
	"github.com/riftwalk/riftwalk/internal/logging"
	"github.com/riftwalk/riftwalk/internal/xdg"
	"github.com/riftwalk/riftwalk/pkg/errutil"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the riftwalk CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil, nil)
}

func newRootCmd(runDeps *RunDeps, migrateDeps *MigrateDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riftwalk",
		Short: "Riftwalk - a headless time-travel world simulation",
		Long: `Riftwalk runs the simulation core of a time-travel action RPG:
streamed terrain, NPCs, combat and dialogue stepped frame by frame.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/riftwalk/config.yaml)")
	cmd.PersistentFlags().String("log-format", "json", "log format (json or text)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewRunCmd(runDeps))
	cmd.AddCommand(NewSaveCmd(runDeps))
	cmd.AddCommand(NewMigrateCmd(migrateDeps))
	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadConfig resolves the configuration for cmd. An explicit --config
// must exist; the XDG default is optional.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, required := configFile, configFile != ""
	if path == "" {
		p, err := xdg.ConfigFile()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.Load(config.LoadOptions{
		Path:     path,
		Required: required,
		Flags:    cmd.Flags(),
	})
}

// setupLogging installs the default logger described by cfg.
func setupLogging(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.SetDefault(logging.Options{
		Service: "riftwalk",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})
}

// fail logs err with its code and context, then returns it for cobra.
func fail(logger *slog.Logger, msg string, err error) error {
	errutil.LogError(logger, msg, err)
	return err
}
