package stubs

import (
	"context"
	"sync"

	"booklib/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu      sync.RWMutex
	books   []models.Book
	saves   int
	loadErr error
	saveErr error
	closed  bool
}

// NewMockDB creates a new mock database seeded with books
func NewMockDB(seed ...models.Book) *MockDB {
	return &MockDB{
		books: append([]models.Book(nil), seed...),
	}
}

// Load returns a copy of the stored sequence
func (m *MockDB) Load(ctx context.Context) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}

	books := make([]models.Book, len(m.books))
	copy(books, m.books)
	return books, nil
}

// Save replaces the stored sequence, unless a save error was injected
func (m *MockDB) Save(ctx context.Context, books []models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}

	m.books = make([]models.Book, len(books))
	copy(m.books, books)
	return nil
}

// FailLoads makes every following Load return err (nil restores success)
func (m *MockDB) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSaves makes every following Save return err (nil restores success)
func (m *MockDB) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saved returns a copy of the last successfully saved sequence
func (m *MockDB) Saved() []models.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	books := make([]models.Book, len(m.books))
	copy(books, m.books)
	return books
}

// SaveCount returns how many times Save was called, failed calls included
func (m *MockDB) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Closed reports whether Close was called
func (m *MockDB) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Close marks the mock as closed
func (m *MockDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
