// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/riftwalk/riftwalk/internal/store"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Integration Suite")
}

// testEnv holds the database shared by the suite.
type testEnv struct {
	ctx       context.Context
	connStr   string
	pool      *pgxpool.Pool
	container testcontainers.Container

	Relationships *store.RelationshipRepository
	Interactions  *store.InteractionRepository
}

var env *testEnv

var _ = BeforeSuite(func() {
	var err error
	env, err = setupStoreTestEnv()
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	if env != nil {
		env.cleanup()
	}
})

func setupStoreTestEnv() (*testEnv, error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("riftwalk_test"),
		postgres.WithUsername("riftwalk"),
		postgres.WithPassword("riftwalk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	m, err := store.NewMigrator(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := m.Up(); err != nil {
		_ = m.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := m.Close(); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	pool, err := store.Open(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &testEnv{
		ctx:           ctx,
		connStr:       connStr,
		pool:          pool,
		container:     container,
		Relationships: store.NewRelationshipRepository(pool),
		Interactions:  store.NewInteractionRepository(pool),
	}, nil
}

func (e *testEnv) cleanup() {
	if e.pool != nil {
		e.pool.Close()
	}
	if e.container != nil {
		_ = e.container.Terminate(e.ctx)
	}
}

// truncate empties every table between specs.
func truncate() {
	_, err := env.pool.Exec(env.ctx, "TRUNCATE relationships, interaction_saves")
	Expect(err).NotTo(HaveOccurred())
}
