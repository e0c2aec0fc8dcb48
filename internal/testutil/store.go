// Package testutil provides worksheet fixtures and seeded stores for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/arkas/internal/model"
	"github.com/Veraticus/arkas/internal/service"
	"github.com/Veraticus/arkas/internal/storage"
)

// TestStore is a submission store that is closed when the test ends.
type TestStore struct {
	Store service.SubmissionStore
	t     *testing.T
}

// SetupTestStore opens an empty store of the given backend ("json" or
// "sqlite") and seeds it with submissions.
//
// Example:
//
//	db := testutil.SetupTestStore(t, storage.BackendSQLite,
//		testutil.NewSubmission("Sari").Build(),
//	)
func SetupTestStore(t *testing.T, backend string, submissions ...model.Submission) *TestStore {
	t.Helper()

	cfg := storage.Config{Backend: backend}
	switch backend {
	case storage.BackendSQLite:
		cfg.Path = filepath.Join(t.TempDir(), "worksheet.db")
	default:
		cfg.Path = filepath.Join(t.TempDir(), "worksheet.json")
	}

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if len(submissions) > 0 {
		if err := store.Save(context.Background(), submissions); err != nil {
			t.Fatalf("failed to seed test store: %v", err)
		}
	}

	return &TestStore{Store: store, t: t}
}

// MustLoad returns every stored submission or fails the test.
func (s *TestStore) MustLoad() []model.Submission {
	s.t.Helper()
	submissions, err := s.Store.Load(context.Background())
	if err != nil {
		s.t.Fatalf("failed to load submissions: %v", err)
	}
	return submissions
}
