// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/riftwalk/riftwalk/internal/interaction"
)

// InteractionRepository stores interaction world state per save slot.
type InteractionRepository struct {
	pool poolIface
}

// NewInteractionRepository returns a repository over pool.
func NewInteractionRepository(pool poolIface) *InteractionRepository {
	return &InteractionRepository{pool: pool}
}

func encodeInteractions(slot string, data interaction.SaveData) ([]byte, int64, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, 0, oops.Code("STORE_SERIALIZATION").With("slot", slot).Wrap(err)
	}
	return raw, int64(data.NextID), nil //nolint:gosec // ids are allocated sequentially from 1
}

// Create inserts a new slot and fails with ErrConflict when it exists.
func (r *InteractionRepository) Create(ctx context.Context, slot string, data interaction.SaveData) error {
	raw, next, err := encodeInteractions(slot, data)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO interaction_saves (slot, data, next_id) VALUES ($1, $2, $3)`,
		slot, raw, next)
	if isUniqueViolation(err) {
		return oops.Code("STORE_CONFLICT").With("slot", slot).Wrap(ErrConflict)
	}
	if err != nil {
		return oops.Code("STORE_QUERY_FAILED").With("operation", "create interaction save").With("slot", slot).Wrap(err)
	}
	return nil
}

// Put writes slot, replacing any previous state.
func (r *InteractionRepository) Put(ctx context.Context, slot string, data interaction.SaveData) error {
	raw, next, err := encodeInteractions(slot, data)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO interaction_saves (slot, data, next_id, updated_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, next_id = EXCLUDED.next_id, updated_at = now()`,
		slot, raw, next)
	if err != nil {
		return oops.Code("STORE_QUERY_FAILED").With("operation", "put interaction save").With("slot", slot).Wrap(err)
	}
	return nil
}

// Get reads slot.
func (r *InteractionRepository) Get(ctx context.Context, slot string) (interaction.SaveData, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM interaction_saves WHERE slot = $1`, slot).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return interaction.SaveData{}, oops.Code("STORE_NOT_FOUND").With("slot", slot).Wrap(ErrNotFound)
	}
	if err != nil {
		return interaction.SaveData{}, oops.Code("STORE_QUERY_FAILED").With("operation", "get interaction save").With("slot", slot).Wrap(err)
	}
	var data interaction.SaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return interaction.SaveData{}, oops.Code("STORE_SERIALIZATION").With("slot", slot).Wrap(err)
	}
	return data, nil
}

// Delete removes slot. A missing slot is not an error.
func (r *InteractionRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM interaction_saves WHERE slot = $1`, slot); err != nil {
		return oops.Code("STORE_QUERY_FAILED").With("operation", "delete interaction save").With("slot", slot).Wrap(err)
	}
	return nil
}
