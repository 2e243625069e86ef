// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/internal/config"
	"github.com/riftwalk/riftwalk/internal/integration"
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/observability"
	"github.com/riftwalk/riftwalk/internal/relationship"
	"github.com/riftwalk/riftwalk/internal/save"
	"github.com/riftwalk/riftwalk/internal/sim"
	"github.com/riftwalk/riftwalk/pkg/errutil"
)

const shutdownTimeout = 5 * time.Second

// runOptions are the run flags that are not configuration.
type runOptions struct {
	frames        int
	delta         float32
	realtime      bool
	autoAttack    bool
	load          string
	autosaveEvery float64
}

// NewRunCmd creates the run subcommand.
func NewRunCmd(deps *RunDeps) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step the simulation headlessly",
		Long: `Run the simulation for a number of frames with the player walking
east from the spawn point. Progress is logged once per simulated second and
the game is autosaved to the save directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulation(cmd, opts, deps.withDefaults())
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.frames, "frames", 600, "frames to simulate (0 runs until interrupted)")
	f.Float32Var(&opts.delta, "delta", 1.0/60, "seconds per frame")
	f.BoolVar(&opts.realtime, "realtime", false, "pace frames to the wall clock")
	f.BoolVar(&opts.autoAttack, "auto-attack", false, "swing a light attack every frame")
	f.StringVar(&opts.load, "load", "", "save slot to restore before running")
	f.Float64Var(&opts.autosaveEvery, "autosave-every", 60, "simulated seconds between autosaves (0 disables)")

	f.Int64("year", 0, "starting year")
	f.Float32("walk-speed", 0, "player walk speed in units per second")
	f.String("player-name", "", "character name")
	f.String("metrics-addr", "", "metrics listen address (empty disables)")
	f.String("integration-url", "", "backend base URL for AI dialogue")
	f.String("database-url", "", "Postgres URL for relationship persistence")
	f.String("saves-dir", "", "save slot directory")

	return cmd
}

func simConfig(cfg config.Config, logger *slog.Logger) sim.Config {
	sc := sim.DefaultConfig()
	sc.Chunk = cfg.Chunk
	sc.Terrain = cfg.Terrain
	sc.NPC = cfg.NPC
	sc.MinYear = cfg.Timeline.MinYear
	sc.MaxYear = cfg.Timeline.MaxYear
	sc.StartYear = cfg.Timeline.StartYear
	sc.MaxDelta = cfg.Time.MaxDelta
	sc.TimeScale = cfg.Time.TimeScale
	sc.DayLength = cfg.Time.DayLength
	sc.WalkSpeed = cfg.Player.WalkSpeed
	sc.PlayerName = cfg.Player.Name
	sc.Logger = logger
	return sc
}

func runSimulation(cmd *cobra.Command, opts *runOptions, deps *RunDeps) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogging(cmd, cfg)

	if opts.delta <= 0 {
		return oops.Code("CONFIG_INVALID").With("delta", opts.delta).Errorf("delta must be positive")
	}

	ctx, stop := deps.SignalContext(cmd.Context())
	defer stop()

	sc := simConfig(cfg, logger)

	if cfg.Integration.BaseURL != "" {
		client, err := deps.ChatClientFactory(integration.ClientConfig{
			BaseURL:    cfg.Integration.BaseURL,
			ProjectID:  cfg.Integration.ProjectID,
			Workers:    cfg.Integration.Workers,
			QueueSize:  cfg.Integration.QueueSize,
			Timeout:    cfg.Integration.Timeout,
			MaxRetries: cfg.Integration.Retries,
			Logger:     logger,
		})
		if err != nil {
			return fail(logger, "integration client failed", err)
		}
		defer client.Close()
		sc.Chat = client
	}

	if cfg.Database.URL != "" {
		rels, err := deps.RelationshipStoreFactory(ctx, cfg.Database.URL)
		if err != nil {
			return fail(logger, "relationship store unavailable", err)
		}
		defer rels.Close()

		data, err := rels.LoadAll(ctx)
		if err != nil {
			return fail(logger, "load relationships failed", err)
		}
		sc.Relationships = relationship.NewStore()
		sc.Relationships.Load(data)
		logger.Info("relationships loaded", "count", len(data))

		defer func() {
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := rels.SaveAll(saveCtx, sc.Relationships.Save()); err != nil {
				errutil.LogError(logger, "save relationships failed", err)
			}
		}()
	}

	s, err := sim.New(sc)
	if err != nil {
		return fail(logger, "simulation setup failed", err)
	}

	dir := cfg.Saves.Dir
	if dir == "" {
		if dir, err = deps.SavesDirGetter(); err != nil {
			return fail(logger, "save directory unavailable", err)
		}
	}
	slots := save.NewSlotStore(dir, logger)

	if opts.load != "" {
		d, err := slots.Load(opts.load)
		if err != nil {
			return fail(logger, "load save failed", err)
		}
		if err := s.Restore(d); err != nil {
			return fail(logger, "restore save failed", err)
		}
		logger.Info("save restored", "slot", opts.load, "year", s.Year())
	}

	var ready atomic.Bool
	var serverErrs <-chan error
	if cfg.Metrics.Addr != "" {
		srv := deps.ObservabilityServerFactory(cfg.Metrics.Addr, ready.Load,
			observability.WithLogger(logger),
			observability.WithVersion(version),
			observability.WithCollectors(
				chunk.RegisterMetrics,
				npc.RegisterMetrics,
				combat.RegisterMetrics,
				integration.RegisterMetrics,
				sim.RegisterMetrics,
			),
		)
		errs, err := srv.Start()
		if err != nil {
			return fail(logger, "observability server failed", err)
		}
		serverErrs = errs
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(stopCtx); err != nil {
				errutil.LogError(logger, "observability shutdown failed", err)
			}
		}()
		logger.Info("observability listening", "addr", srv.Addr())
	}

	ready.Store(true)
	frames, err := loop(ctx, s, slots, opts, logger, serverErrs)
	if err != nil {
		return fail(logger, "simulation stopped", err)
	}

	p := s.Player()
	fmt.Fprintf(cmd.OutOrStdout(), "ran %d frames: year %d (%s), level %d, hp %.0f/%.0f, %d items collected, %d gold\n",
		frames, s.Year(), s.Timeline().EraName(),
		p.Progression.Level, p.Stats.CurrentHP, p.Stats.MaxHP, len(s.Collected()), p.Gold)
	return nil
}

// loop steps s until the frame budget is spent or ctx ends, and returns
// the number of frames run.
func loop(ctx context.Context, s *sim.Simulation, slots *save.SlotStore, opts *runOptions, logger *slog.Logger, serverErrs <-chan error) (int, error) {
	var tick <-chan time.Time
	if opts.realtime {
		t := time.NewTicker(time.Duration(float64(opts.delta) * float64(time.Second)))
		defer t.Stop()
		tick = t.C
	}

	perSecond := max(int(1/opts.delta+0.5), 1)
	lastSave := s.PlayTime()
	n := 0
	for opts.frames <= 0 || n < opts.frames {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "frames", n)
			return n, autosave(s, slots, opts, logger)
		case err := <-serverErrs:
			return n, oops.Code("OBSERVABILITY_FAILED").Wrap(err)
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				continue
			case <-tick:
			}
		}

		f := s.Step(sim.Input{
			Delta:       opts.delta,
			Move:        mgl32.Vec3{1, 0, 0},
			LightAttack: opts.autoAttack,
		})
		n++
		report(logger, s, f)

		if n%perSecond == 0 {
			pos := s.Position()
			logger.Info("tick",
				"frame", f.Number,
				"year", s.Year(),
				"era", s.Timeline().EraName(),
				"x", pos.X(),
				"z", pos.Z(),
				"hp", s.Player().Stats.CurrentHP,
				"chunks", s.Chunks().LoadedCount(),
				"npcs", s.NPCs().Count(),
				"hour", s.TimeOfDay(),
			)
		}
		if opts.autosaveEvery > 0 && s.PlayTime()-lastSave >= opts.autosaveEvery {
			lastSave = s.PlayTime()
			if err := slots.Autosave(s.Snapshot(save.AutosaveSlot)); err != nil {
				errutil.LogError(logger, "autosave failed", err)
			}
		}
	}
	return n, autosave(s, slots, opts, logger)
}

func autosave(s *sim.Simulation, slots *save.SlotStore, opts *runOptions, logger *slog.Logger) error {
	if opts.autosaveEvery <= 0 {
		return nil
	}
	if err := slots.Autosave(s.Snapshot(save.AutosaveSlot)); err != nil {
		return err
	}
	logger.Debug("autosaved", "dir", slots.Dir())
	return nil
}

// report logs the notable events of one frame.
func report(logger *slog.Logger, s *sim.Simulation, f sim.Frame) {
	for _, h := range f.Hits {
		if h.Killed {
			logger.Info("enemy defeated", "npc", h.NPC, "frame", f.Number, "gold", f.GoldGained)
		}
	}
	for _, lvl := range f.LevelsGained {
		logger.Info("level up", "level", lvl)
	}
	if f.Interaction != nil {
		logger.Info("interaction", "result", fmt.Sprintf("%T", f.Interaction), "detail", f.Interaction)
	}
	if f.PlayerDied {
		logger.Warn("player died", "frame", f.Number, "year", s.Year())
	}
	if f.Err != nil {
		errutil.LogError(logger, "frame error", f.Err)
	}
}
