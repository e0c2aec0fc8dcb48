package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(ctx context.Context, tx *sql.Tx, d Dialect) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(ctx context.Context, tx *sql.Tx, d Dialect) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS submissions (
					id ` + d.SerialKey + `,
					name TEXT NOT NULL,
					date TEXT NOT NULL,
					email TEXT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS submission_items (
					submission_id BIGINT NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
					section TEXT NOT NULL,
					position INTEGER NOT NULL,
					activity TEXT NOT NULL DEFAULT '',
					parameter TEXT NOT NULL DEFAULT '',
					PRIMARY KEY (submission_id, section, position)
				)`,
			}
			return execAll(ctx, tx, queries)
		},
	},
	{
		Version:     2,
		Description: "Index submissions by email",
		Up: func(ctx context.Context, tx *sql.Tx, _ Dialect) error {
			return execAll(ctx, tx, []string{
				`CREATE INDEX IF NOT EXISTS idx_submissions_email ON submissions(email)`,
			})
		},
	},
}

func execAll(ctx context.Context, tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// Migrate brings the schema up to ExpectedSchemaVersion. Applied versions are
// tracked in schema_migrations so the same code serves every dialect.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(ctx, tx, s.dialect); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		insert := s.sq.Insert("schema_migrations").
			Columns("version", "description").
			Values(migration.Version, migration.Description).
			RunWith(tx)
		if _, execErr := insert.ExecContext(ctx); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description,
			"dialect", s.dialect.Name)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the highest applied migration, or 0.
func (s *SQLStore) SchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.sq.Select("MAX(version)").From("schema_migrations").
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return int(version.Int64), nil
}
