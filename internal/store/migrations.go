package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const schemaVersion = "1"

func (s *Store) migrate(ctx context.Context) error {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if err == nil && version >= schemaVersion {
		return nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		// meta does not exist yet on a fresh database
		s.logger.Debug().Err(err).Msg("schema version unavailable, migrating")
	}
	return s.migrateV1(ctx)
}

func (s *Store) migrateV1(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_created ON categories(created_at)`,
		`CREATE TABLE IF NOT EXISTS products (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_created ON products(created_at)`,
		`CREATE TABLE IF NOT EXISTS inquiries (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_created ON inquiries(created_at)`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration v1: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration v1: %w", err)
		}
	}

	upsert := s.dialect.rebind(`INSERT INTO meta(key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	if _, err := tx.ExecContext(ctx, upsert, "schema_version", schemaVersion); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}

	return tx.Commit()
}
