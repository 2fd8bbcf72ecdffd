package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/frousseau/sheetkeeper/internal/model"
)

// MockWriter is an in-memory DocumentWriter for tests.
type MockWriter struct {
	CreateErr error
	WriteErr  error

	Documents map[string]*MockDocument
	mu        sync.Mutex
	nextID    int
}

// MockDocument records everything written to one report document.
type MockDocument struct {
	Title         string
	Header        []string
	Rows          []model.ReportRow
	DecimalPlaces int32
	Moved         bool
	Trashed       bool
}

// NewMockWriter creates an empty mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{Documents: make(map[string]*MockDocument)}
}

// CreateDocument implements DocumentWriter.
func (m *MockWriter) CreateDocument(_ context.Context, title string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.nextID++
	id := fmt.Sprintf("doc-%d", m.nextID)
	m.Documents[id] = &MockDocument{Title: title}
	return id, nil
}

// WriteRows implements DocumentWriter.
func (m *MockWriter) WriteRows(_ context.Context, documentID string, header []string, rows []model.ReportRow, decimalPlaces int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	doc := m.Documents[documentID]
	doc.Header = header
	doc.Rows = rows
	doc.DecimalPlaces = decimalPlaces
	return nil
}

// MoveToFolder implements DocumentWriter.
func (m *MockWriter) MoveToFolder(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Documents[documentID].Moved = true
	return nil
}

// TrashDocument implements DocumentWriter.
func (m *MockWriter) TrashDocument(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Documents[documentID].Trashed = true
	return nil
}
