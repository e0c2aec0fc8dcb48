package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/arkas/internal/common"
	"github.com/Veraticus/arkas/internal/service"
)

// Backend names accepted by Open.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config selects and locates a submission store.
type Config struct {
	Backend string
	Path    string // JSON file or SQLite database
	DSN     string // PostgreSQL connection string
}

// Open returns the configured store, migrated and ready for use.
func Open(ctx context.Context, cfg Config) (service.SubmissionStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendJSON:
		return NewJSONStore(cfg.Path)
	case BackendSQLite:
		store, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return migrated(ctx, store)
	case BackendPostgres:
		store, err := NewPostgresStore(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return migrated(ctx, store)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, cfg.Backend)
	}
}

func migrated(ctx context.Context, store *SQLStore) (*SQLStore, error) {
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Copy replaces everything in dst with the contents of src and returns the
// number of submissions copied. An empty src is refused with ErrEmptySource
// and dst is left untouched.
func Copy(ctx context.Context, dst, src service.SubmissionStore) (int, error) {
	submissions, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load source: %w", err)
	}
	if len(submissions) == 0 {
		return 0, ErrEmptySource
	}
	if err := dst.Save(ctx, submissions); err != nil {
		return 0, fmt.Errorf("failed to save destination: %w", err)
	}
	return len(submissions), nil
}
