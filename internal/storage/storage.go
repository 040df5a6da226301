package storage

import (
	"context"
	"fmt"

	"booklib/internal/models"
)

// Storage defines the persistence adapter for the catalog.
// Adapters hold no catalog state: every Save replaces the whole sequence.
type Storage interface {
	// Load returns the persisted sequence in catalog order.
	// A missing backing store yields an empty sequence and no error.
	Load(ctx context.Context) ([]models.Book, error)

	// Save overwrites the backing store with books, in order
	Save(ctx context.Context, books []models.Book) error

	// Lifecycle
	Close() error
}

// CorruptError reports persisted content that could not be decoded.
// The content has already been moved aside to QuarantinePath (if non-empty).
type CorruptError struct {
	Path           string
	QuarantinePath string
	Err            error
}

func (e *CorruptError) Error() string {
	if e.QuarantinePath != "" {
		return fmt.Sprintf("corrupt library file %s (moved to %s): %v", e.Path, e.QuarantinePath, e.Err)
	}
	return fmt.Sprintf("corrupt library file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}
