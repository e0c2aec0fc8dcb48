// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/arkas/internal/model"
)

// SubmissionStore defines the contract for worksheet persistence.
//
// Implementations are not required to be safe for concurrent writers.
// Append and Delete are load-modify-save sequences; Delete addresses a
// submission by position, which can shift between a read and the delete.
type SubmissionStore interface {
	Load(ctx context.Context) ([]model.Submission, error)
	Save(ctx context.Context, submissions []model.Submission) error
	Append(ctx context.Context, submission model.Submission) error
	Delete(ctx context.Context, index int) error
	Close() error
}

// RowWriter receives flattened export rows, e.g. a remote spreadsheet.
type RowWriter interface {
	Write(ctx context.Context, header []string, rows [][]string) error
}

// RetryOptions configures retry behavior.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
