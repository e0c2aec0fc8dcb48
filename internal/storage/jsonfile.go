package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/Veraticus/arkas/internal/common"
	"github.com/Veraticus/arkas/internal/model"
)

// JSONStore keeps every submission in one indented JSON array on disk.
//
// Known limitation: there is no locking and no atomic replace. Every
// mutation reads the whole file and writes it back in place, so concurrent
// writers lose updates (last writer wins) and a crash during a write can
// leave a truncated file. Load reports such a file as
// common.ErrDatabaseCorrupted instead of treating it as empty.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by path. The file itself is created on
// the first write.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &JSONStore{path: path}, nil
}

// OpenJSONFile opens an existing JSON store read from path. Unlike
// NewJSONStore it creates nothing and fails with common.ErrNotFound when the
// file is missing.
func OpenJSONFile(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return &JSONStore{path: path}, nil
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads all submissions. A missing or empty file means no data yet.
func (s *JSONStore) Load(ctx context.Context) ([]model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Submission{}, nil
	}

	var submissions []model.Submission
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrDatabaseCorrupted, s.path, err)
	}
	if submissions == nil {
		submissions = []model.Submission{}
	}
	return submissions, nil
}

// Save overwrites the file with submissions.
func (s *JSONStore) Save(ctx context.Context, submissions []model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if submissions == nil {
		submissions = []model.Submission{}
	}

	data, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submissions: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Append validates submission and adds it at the end.
func (s *JSONStore) Append(ctx context.Context, submission model.Submission) error {
	if err := validateSubmission(&submission); err != nil {
		return err
	}

	submissions, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Save(ctx, append(submissions, submission))
}

// Delete removes the submission at index (0-based).
func (s *JSONStore) Delete(ctx context.Context, index int) error {
	submissions, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateIndex(index, len(submissions)); err != nil {
		return err
	}
	return s.Save(ctx, slices.Delete(submissions, index, index+1))
}

// Close is a no-op; the file is opened per call.
func (s *JSONStore) Close() error {
	return nil
}
