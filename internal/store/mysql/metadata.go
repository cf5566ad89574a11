//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS shopstats_metadata (
    meta_key   VARCHAR(64) PRIMARY KEY,
    meta_value TEXT NOT NULL
) DEFAULT CHARSET = utf8mb4`

// SaveMetadata upserts metadata values.
func (s *Store) SaveMetadata(ctx context.Context, values map[string]string) error {
	if _, err := s.db.ExecContext(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	for key, value := range values {
		_, err := s.db.ExecContext(ctx, `
            INSERT INTO shopstats_metadata (meta_key, meta_value) VALUES (?, ?)
            ON DUPLICATE KEY UPDATE meta_value = VALUES(meta_value)
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
	var exists bool
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(*) > 0 FROM information_schema.tables
        WHERE table_schema = DATABASE() AND table_name = ?
    `, store.MetadataTable).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check metadata table: %w", err)
	}
	if !exists {
		return "", store.ErrNoMetadata
	}

	var value string
	err = s.db.QueryRowContext(ctx,
		`SELECT meta_value FROM shopstats_metadata WHERE meta_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNoMetadata
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return value, nil
}
