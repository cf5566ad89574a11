//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS shopstats_metadata (
    meta_key   TEXT PRIMARY KEY,
    meta_value TEXT NOT NULL
)`

// SaveMetadata upserts metadata values.
func (s *Store) SaveMetadata(ctx context.Context, values map[string]string) error {
	// Create table if it doesn't exist
	if _, err := s.pool.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	for key, value := range values {
		_, err := s.pool.Exec(ctx, `
            INSERT INTO shopstats_metadata (meta_key, meta_value) VALUES ($1, $2)
            ON CONFLICT (meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().Int("keys", len(values)).Msg("Saved metadata")
	return nil
}

// Metadata retrieves a single metadata value by key.
func (s *Store) Metadata(ctx context.Context, key string) (string, error) {
	exists, err := s.metadataExists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", store.ErrNoMetadata
	}

	var value string
	err = s.pool.QueryRow(ctx, `
        SELECT meta_value FROM shopstats_metadata WHERE meta_key = $1
    `, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", store.ErrNoMetadata
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return value, nil
}

// metadataExists checks if the metadata table exists.
func (s *Store) metadataExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, store.MetadataTable).Scan(&exists)
	return exists, err
}
