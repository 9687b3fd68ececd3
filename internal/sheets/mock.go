package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/txscope/internal/export"
)

// MockPublisher is a Publisher that records calls for tests.
type MockPublisher struct {
	PublishFunc func(ctx context.Context, table export.Table) (Result, error)
	Calls       []export.Table
	mu          sync.Mutex
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish implements Publisher.
func (m *MockPublisher) Publish(ctx context.Context, table export.Table) (Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, table)
	fn := m.PublishFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, table)
	}
	return Result{SpreadsheetID: "mock-spreadsheet", RowsWritten: len(table.Rows)}, nil
}

// CallCount returns the number of Publish calls.
func (m *MockPublisher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SetError makes every following Publish call fail with err.
func (m *MockPublisher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishFunc = func(context.Context, export.Table) (Result, error) {
		return Result{}, err
	}
}
