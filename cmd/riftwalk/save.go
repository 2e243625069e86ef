// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/riftwalk/riftwalk/internal/save"
	"github.com/riftwalk/riftwalk/internal/timeline"
)

// NewSaveCmd creates the save subcommand group.
func NewSaveCmd(deps *RunDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Inspect save files",
	}
	cmd.PersistentFlags().String("saves-dir", "", "save slot directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check a save file against the save schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaveValidate(cmd, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List manual save slots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSaveList(cmd, deps.withDefaults())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := slotStore(cmd, deps.withDefaults())
			if err != nil {
				return err
			}
			if err := slots.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", save.Sanitize(args[0]))
			return nil
		},
	})
	return cmd
}

func runSaveValidate(cmd *cobra.Command, path string) error {
	raw, err := os.ReadFile(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		return oops.Code("SAVE_IO").With("path", path).Wrapf(err, "read save")
	}
	if err := save.Validate(raw); err != nil {
		return oops.With("path", path).Wrap(err)
	}
	d, err := save.Decode(raw)
	if err != nil {
		return oops.With("path", path).Wrap(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (v%d, %s, %s era, played %s)\n",
		path, d.Version, d.Player.CharacterName,
		timeline.EraName(d.World.EraIndex), save.FormatPlayTime(d.PlayTimeSeconds))
	return nil
}

func slotStore(cmd *cobra.Command, deps *RunDeps) (*save.SlotStore, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := setupLogging(cmd, cfg)
	dir := cfg.Saves.Dir
	if dir == "" {
		if dir, err = deps.SavesDirGetter(); err != nil {
			return nil, err
		}
	}
	return save.NewSlotStore(dir, logger), nil
}

func runSaveList(cmd *cobra.Command, deps *RunDeps) error {
	slots, err := slotStore(cmd, deps)
	if err != nil {
		return err
	}
	infos, err := slots.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintf(out, "no saves in %s\n", slots.Dir())
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tNAME\tCHARACTER\tERA\tPLAYED\tSAVED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			info.Filename, info.SlotName, info.CharacterName,
			timeline.EraName(info.EraIndex), save.FormatPlayTime(info.PlayTime), info.Timestamp)
	}
	return w.Flush()
}
