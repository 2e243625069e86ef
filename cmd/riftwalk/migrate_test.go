// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package main

import (
	"errors"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/pkg/errutil"
)

type fakeMigrator struct {
	version uint
	dirty   bool
	pending []uint
	calls   []string
	upErr   error
	closed  bool
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.upErr
}

func (f *fakeMigrator) Down() error {
	f.calls = append(f.calls, "down")
	return nil
}

func (f *fakeMigrator) Steps(int) error { return nil }

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, nil }

func (f *fakeMigrator) Force(v int) error {
	f.calls = append(f.calls, "force")
	f.version = uint(v) //nolint:gosec // tests only force non-negative versions
	return nil
}

func (f *fakeMigrator) PendingMigrations() ([]uint, error) { return f.pending, nil }

func (f *fakeMigrator) Close() error {
	f.closed = true
	return nil
}

func migrateRoot(m *fakeMigrator, gotURL *string) *MigrateDeps {
	return &MigrateDeps{MigratorFactory: func(url string) (Migrator, error) {
		if gotURL != nil {
			*gotURL = url
		}
		return m, nil
	}}
}

func TestParseForceVersion(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantVersion int
		wantErrCode string
	}{
		{name: "valid integer", input: "3", wantVersion: 3},
		{name: "zero", input: "0", wantVersion: 0},
		{name: "surrounding whitespace", input: "  42 ", wantVersion: 42},
		{name: "negative parses", input: "-1", wantVersion: -1},
		{name: "non-numeric", input: "abc", wantErrCode: "INVALID_VERSION"},
		{name: "float", input: "1.5", wantErrCode: "INVALID_VERSION"},
		{name: "empty", input: "", wantErrCode: "INVALID_VERSION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseForceVersion(tt.input)
			if tt.wantErrCode != "" {
				errutil.AssertErrorCode(t, err, tt.wantErrCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, got)
		})
	}
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	testEnv(t)
	m := &fakeMigrator{}

	_, _, err := execute(newRootCmd(nil, migrateRoot(m, nil)), "migrate", "up")
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	assert.Empty(t, m.calls)
}

func TestMigrate_Up(t *testing.T) {
	testEnv(t)
	m := &fakeMigrator{pending: []uint{1, 2}}
	var url string

	out, _, err := execute(newRootCmd(nil, migrateRoot(m, &url)),
		"migrate", "up", "--database-url", "postgres://db/riftwalk")
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/riftwalk", url)
	assert.Equal(t, []string{"up"}, m.calls)
	assert.Contains(t, out, "Applied 000001_relationships")
	assert.Contains(t, out, "Applied 000002_interaction_saves")
	assert.True(t, m.closed)
}

func TestMigrate_UpNothingPending(t *testing.T) {
	testEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/riftwalk")
	m := &fakeMigrator{}

	out, _, err := execute(newRootCmd(nil, migrateRoot(m, nil)), "migrate", "up")
	require.NoError(t, err)
	assert.Empty(t, m.calls)
	assert.Contains(t, out, "No pending migrations")
}

func TestMigrate_UpFailure(t *testing.T) {
	testEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/riftwalk")
	m := &fakeMigrator{pending: []uint{1}, upErr: oops.Code("MIGRATION_UP_FAILED").Wrap(errors.New("syntax error"))}

	_, _, err := execute(newRootCmd(nil, migrateRoot(m, nil)), "migrate", "up")
	errutil.AssertErrorCode(t, err, "MIGRATION_UP_FAILED")
	assert.True(t, m.closed)
}

func TestMigrate_Down(t *testing.T) {
	testEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/riftwalk")
	m := &fakeMigrator{}

	out, _, err := execute(newRootCmd(nil, migrateRoot(m, nil)), "migrate", "down")
	require.NoError(t, err)
	assert.Equal(t, []string{"down"}, m.calls)
	assert.Contains(t, out, "Rolled back")
}

func TestMigrate_Version(t *testing.T) {
	testEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/riftwalk")
	m := &fakeMigrator{version: 2, dirty: true}

	out, _, err := execute(newRootCmd(nil, migrateRoot(m, nil)), "migrate", "version")
	require.NoError(t, err)
	assert.Equal(t, "2 (dirty)\n", out)
}

func TestMigrate_Force(t *testing.T) {
	testEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/riftwalk")
	m := &fakeMigrator{version: 2, dirty: true}

	out, _, err := execute(newRootCmd(nil, migrateRoot(m, nil)), "migrate", "force", "1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), m.version)
	assert.Contains(t, out, "Forced version 1")
}
