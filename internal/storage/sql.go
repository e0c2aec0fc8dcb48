package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"

	"github.com/Veraticus/arkas/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// SQLStore keeps submissions in a relational database. Submission order is
// insertion order (by id), so positional indexes match JSONStore.
//
// Unlike JSONStore every mutation runs in a transaction, but Delete still
// addresses rows by position and is racy against a concurrent Append.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	sq      sq.StatementBuilderType
}

// NewSQLiteStore opens (creating if needed) a SQLite database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(SQLite.DriverName, dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return newSQLStore(db, SQLite)
}

// NewPostgresStore connects to PostgreSQL using a pgx DSN or URL.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	if err := validateString(dsn, "dsn"); err != nil {
		return nil, err
	}

	db, err := sql.Open(Postgres.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newSQLStore(db, Postgres)
}

func newSQLStore(db *sql.DB, d Dialect) (*SQLStore, error) {
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStore{db: db, dialect: d, sq: d.builder()}, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Load returns every submission in insertion order.
func (s *SQLStore) Load(ctx context.Context) ([]model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sq.Select("id", "name", "date", "email").
		From("submissions").
		OrderBy("id").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	submissions := []model.Submission{}
	byID := make(map[int64]int)
	for rows.Next() {
		var (
			id  int64
			sub model.Submission
		)
		if err := rows.Scan(&id, &sub.Name, &sub.Date, &sub.Email); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		byID[id] = len(submissions)
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	if err := s.loadItems(ctx, submissions, byID); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (s *SQLStore) loadItems(ctx context.Context, submissions []model.Submission, byID map[int64]int) error {
	rows, err := s.sq.Select("submission_id", "section", "position", "activity", "parameter").
		From("submission_items").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to query submission items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			id       int64
			section  string
			position int
			item     model.Item
		)
		if err := rows.Scan(&id, &section, &position, &item.Activity, &item.Parameter); err != nil {
			return fmt.Errorf("failed to scan submission item: %w", err)
		}

		idx, ok := byID[id]
		if !ok {
			continue
		}
		if err := submissions[idx].SetItem(model.Section(section), position, item); err != nil {
			return fmt.Errorf("submission %d: %w", id, err)
		}
	}
	return rows.Err()
}

// Save replaces every stored submission with submissions. Like
// JSONStore.Save it stores them as given.
func (s *SQLStore) Save(ctx context.Context, submissions []model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.sq.Delete("submission_items").RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to clear submission items: %w", err)
		}
		if _, err := s.sq.Delete("submissions").RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to clear submissions: %w", err)
		}
		for i := range submissions {
			if err := s.insertTx(ctx, tx, submissions[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Append validates submission and stores it after all others.
func (s *SQLStore) Append(ctx context.Context, submission model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubmission(&submission); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.insertTx(ctx, tx, submission)
	})
}

// Delete removes the submission at position index (0-based).
func (s *SQLStore) Delete(ctx context.Context, index int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := s.sq.Select("id").
			From("submissions").
			OrderBy("id").
			Limit(1).
			Offset(uint64(index)).
			RunWith(tx).
			QueryRowContext(ctx).
			Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		if err != nil {
			return fmt.Errorf("failed to find submission %d: %w", index, err)
		}

		if _, err := s.sq.Delete("submission_items").Where(sq.Eq{"submission_id": id}).RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to delete submission items: %w", err)
		}
		if _, err := s.sq.Delete("submissions").Where(sq.Eq{"id": id}).RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to delete submission: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) insertTx(ctx context.Context, tx *sql.Tx, sub model.Submission) error {
	var id int64
	err := s.sq.Insert("submissions").
		Columns("name", "date", "email").
		Values(sub.Name, sub.Date, sub.Email).
		Suffix("RETURNING id").
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	items := s.sq.Insert("submission_items").
		Columns("submission_id", "section", "position", "activity", "parameter")
	for _, section := range model.Sections() {
		for pos, item := range sub.Items(section) {
			items = items.Values(id, string(section), pos, item.Activity, item.Parameter)
		}
	}

	if _, err := items.RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert submission items: %w", err)
	}
	return nil
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
