package sheets

import (
	"context"
	"sync"
)

// MockWriter is a mock implementation of service.RowWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, header []string, rows [][]string) error
	LastHeader     []string
	LastRows       [][]string
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error  error
	Header []string
	Rows   [][]string
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write records the call and returns WriteFunc's result.
func (m *MockWriter) Write(ctx context.Context, header []string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastHeader = header
	m.LastRows = rows

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, header, rows)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Header: header,
		Rows:   rows,
		Error:  err,
	})

	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return err from every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []string, _ [][]string) error {
		return err
	}
}
