// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riftwalk/riftwalk/internal/integration"
	"github.com/riftwalk/riftwalk/internal/observability"
	"github.com/riftwalk/riftwalk/internal/relationship"
	"github.com/riftwalk/riftwalk/internal/sim"
	"github.com/riftwalk/riftwalk/internal/store"
	"github.com/riftwalk/riftwalk/internal/xdg"
)

// RunDeps contains injectable dependencies for the run command.
// All fields with nil values will use their default implementations.
type RunDeps struct {
	// ChatClientFactory creates the backend client used for AI dialogue.
	// Default: integration.New
	ChatClientFactory func(cfg integration.ClientConfig) (ChatClient, error)

	// RelationshipStoreFactory opens persistent NPC relationships.
	// Default: store.Open + store.NewRelationshipRepository
	RelationshipStoreFactory func(ctx context.Context, url string) (RelationshipStore, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, ready observability.ReadinessChecker, opts ...observability.Option) ObservabilityServer

	// SavesDirGetter returns the save slot directory.
	// Default: xdg.SavesDir
	SavesDirGetter func() (string, error)

	// SignalContext derives the context cancelled on shutdown signals.
	// Default: signal.NotifyContext on SIGINT and SIGTERM
	SignalContext func(ctx context.Context) (context.Context, context.CancelFunc)
}

// ChatClient wraps the methods used from integration.Client.
type ChatClient interface {
	sim.ChatClient
	Close()
}

// RelationshipStore wraps the methods used from store.RelationshipRepository.
type RelationshipStore interface {
	LoadAll(ctx context.Context) (map[string]relationship.Relationship, error)
	SaveAll(ctx context.Context, data map[string]relationship.Relationship) error
	Close()
}

// ObservabilityServer interface wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

// Migrator wraps the methods used from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Force(version int) error
	PendingMigrations() ([]uint, error)
	Close() error
}

// MigrateDeps contains injectable dependencies for the migrate command.
type MigrateDeps struct {
	// MigratorFactory opens a migrator.
	// Default: store.NewMigrator
	MigratorFactory func(url string) (Migrator, error)
}

// pooledRelationships closes its pool with the repository.
type pooledRelationships struct {
	*store.RelationshipRepository
	pool *pgxpool.Pool
}

func (p pooledRelationships) Close() { p.pool.Close() }

func (d *RunDeps) withDefaults() *RunDeps {
	out := RunDeps{}
	if d != nil {
		out = *d
	}
	if out.ChatClientFactory == nil {
		out.ChatClientFactory = func(cfg integration.ClientConfig) (ChatClient, error) {
			c, err := integration.New(cfg)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
	}
	if out.RelationshipStoreFactory == nil {
		out.RelationshipStoreFactory = func(ctx context.Context, url string) (RelationshipStore, error) {
			pool, err := store.Open(ctx, url)
			if err != nil {
				return nil, err
			}
			return pooledRelationships{store.NewRelationshipRepository(pool), pool}, nil
		}
	}
	if out.ObservabilityServerFactory == nil {
		out.ObservabilityServerFactory = func(addr string, ready observability.ReadinessChecker, opts ...observability.Option) ObservabilityServer {
			return observability.NewServer(addr, ready, opts...)
		}
	}
	if out.SavesDirGetter == nil {
		out.SavesDirGetter = xdg.SavesDir
	}
	if out.SignalContext == nil {
		out.SignalContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		}
	}
	return &out
}

func (d *MigrateDeps) withDefaults() *MigrateDeps {
	out := MigrateDeps{}
	if d != nil {
		out = *d
	}
	if out.MigratorFactory == nil {
		out.MigratorFactory = func(url string) (Migrator, error) {
			m, err := store.NewMigrator(url)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	return &out
}
