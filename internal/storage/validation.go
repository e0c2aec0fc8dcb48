// Package storage persists worksheet submissions.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/arkas/internal/common"
	"github.com/Veraticus/arkas/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrIndexOutOfRange = fmt.Errorf("%w: submission index out of range", common.ErrNotFound)
	ErrEmptySource     = errors.New("source store has no submissions")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateIndex ensures index addresses one of count submissions.
func validateIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, count)
	}
	return nil
}

// validateSubmission normalizes and checks a submission before it is stored.
func validateSubmission(s *model.Submission) error {
	s.Normalize()
	return s.Validate()
}
