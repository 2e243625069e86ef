// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package store

import (
	"context"
	"encoding/json"
	"maps"
	"math"
	"slices"

	"github.com/samber/oops"

	"github.com/riftwalk/riftwalk/internal/relationship"
)

const upsertRelationshipSQL = `INSERT INTO relationships (npc_key, affection, times_spoken, summary, recent, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (npc_key) DO UPDATE SET
	affection = EXCLUDED.affection,
	times_spoken = EXCLUDED.times_spoken,
	summary = EXCLUDED.summary,
	recent = EXCLUDED.recent,
	updated_at = now()`

const selectRelationshipsSQL = `SELECT npc_key, affection, times_spoken, summary, recent FROM relationships ORDER BY npc_key`

// RelationshipRepository stores the relationship map keyed by NPC key.
type RelationshipRepository struct {
	pool poolIface
}

// NewRelationshipRepository returns a repository over pool.
func NewRelationshipRepository(pool poolIface) *RelationshipRepository {
	return &RelationshipRepository{pool: pool}
}

// SaveAll upserts every relationship in one transaction.
func (r *RelationshipRepository) SaveAll(ctx context.Context, data map[string]relationship.Relationship) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return oops.Code("STORE_QUERY_FAILED").With("operation", "begin").Wrap(err)
	}
	for _, key := range slices.Sorted(maps.Keys(data)) {
		rel := data[key]
		recent := rel.Recent
		if recent == nil {
			recent = []relationship.Message{}
		}
		raw, err := json.Marshal(recent)
		if err != nil {
			_ = tx.Rollback(ctx) //nolint:errcheck // marshal error takes precedence
			return oops.Code("STORE_SERIALIZATION").With("npc_key", key).Wrap(err)
		}
		spoken := int32(min(rel.TimesSpoken, math.MaxInt32)) //nolint:gosec // clamped
		if _, err := tx.Exec(ctx, upsertRelationshipSQL, key, rel.Affection, spoken, rel.Summary, raw); err != nil {
			_ = tx.Rollback(ctx) //nolint:errcheck // exec error takes precedence
			return oops.Code("STORE_QUERY_FAILED").With("operation", "upsert relationship").With("npc_key", key).Wrap(err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return oops.Code("STORE_QUERY_FAILED").With("operation", "commit").Wrap(err)
	}
	return nil
}

// LoadAll reads every stored relationship.
func (r *RelationshipRepository) LoadAll(ctx context.Context) (map[string]relationship.Relationship, error) {
	rows, err := r.pool.Query(ctx, selectRelationshipsSQL)
	if err != nil {
		return nil, oops.Code("STORE_QUERY_FAILED").With("operation", "load relationships").Wrap(err)
	}
	defer rows.Close()

	out := make(map[string]relationship.Relationship)
	for rows.Next() {
		var (
			key    string
			rel    relationship.Relationship
			spoken int32
			raw    []byte
		)
		if err := rows.Scan(&key, &rel.Affection, &spoken, &rel.Summary, &raw); err != nil {
			return nil, oops.Code("STORE_QUERY_FAILED").With("operation", "scan relationship").Wrap(err)
		}
		if err := json.Unmarshal(raw, &rel.Recent); err != nil {
			return nil, oops.Code("STORE_SERIALIZATION").With("npc_key", key).Wrap(err)
		}
		rel.TimesSpoken = uint32(max(spoken, 0))
		out[key] = rel
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("STORE_QUERY_FAILED").With("operation", "iterate relationships").Wrap(err)
	}
	return out, nil
}
