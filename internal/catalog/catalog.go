// Package catalog owns the in-memory book sequence and writes it through to
// storage on every mutation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"booklib/internal/models"
	"booklib/internal/storage"
)

// ErrPersist marks a mutation that was applied in memory but could not be
// saved. The in-memory change is kept; the next successful save catches up.
var ErrPersist = errors.New("library changed but could not be saved")

// ErrChanged reports that the book at a position is no longer the one the
// caller expected
var ErrChanged = errors.New("library changed since the book was shown")

// Catalog is the ordered, position-addressed book collection
type Catalog struct {
	mu       sync.RWMutex
	db       storage.Storage
	books    []models.Book
	logger   *zap.Logger
	now      func() time.Time
	addDelay time.Duration
}

// Option configures a Catalog
type Option func(*Catalog)

// WithClock overrides the clock used to stamp AddedDate
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// WithAddDelay sets a pause applied after each Add returns from storage
func WithAddDelay(d time.Duration) Option {
	return func(c *Catalog) {
		c.addDelay = d
	}
}

// Open loads the persisted sequence from db. Corrupt content that the
// adapter moved aside leaves the catalog empty. Corrupt content still in
// place, and any other load failure, is returned so it cannot be overwritten.
func Open(ctx context.Context, db storage.Storage, logger *zap.Logger, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	books, err := db.Load(ctx)
	if err != nil {
		var corrupt *storage.CorruptError
		if !errors.As(err, &corrupt) || corrupt.QuarantinePath == "" {
			return nil, fmt.Errorf("failed to load library: %w", err)
		}
		books = nil
	}

	c.books = append([]models.Book(nil), books...)
	c.logger.Info("Library loaded", zap.Int("book_count", len(c.books)))
	return c, nil
}

// All returns a copy of the catalog in insertion order
func (c *Catalog) All() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	books := make([]models.Book, len(c.books))
	copy(books, c.books)
	return books
}

// Len returns the number of books
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// Add appends a new book stamped with the current time and saves the
// catalog. A save failure is returned wrapped in ErrPersist; the book stays.
func (c *Catalog) Add(ctx context.Context, title, author string, year int, genre string, read bool) (models.Book, error) {
	book, err := c.add(ctx, title, author, year, genre, read)

	if c.addDelay > 0 {
		timer := time.NewTimer(c.addDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	return book, err
}

func (c *Catalog) add(ctx context.Context, title, author string, year int, genre string, read bool) (models.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := models.NewTimestamp(c.now())
	// AddedDate never goes backwards, even if the wall clock does
	if n := len(c.books); n > 0 && added.Before(c.books[n-1].AddedDate.Time) {
		added = c.books[n-1].AddedDate
	}

	book := models.Book{
		Title:           title,
		Author:          author,
		PublicationYear: year,
		Genre:           genre,
		ReadStatus:      read,
		AddedDate:       added,
	}
	c.books = append(c.books, book)

	if err := c.save(ctx); err != nil {
		return book, err
	}

	c.logger.Info("Book added",
		zap.String("title", title),
		zap.String("author", author),
		zap.Int("position", len(c.books)-1),
	)
	return book, nil
}

// RemoveAt deletes the book at index and saves the catalog. An index outside
// [0, Len()) is ignored and reports false with no error.
func (c *Catalog) RemoveAt(ctx context.Context, index int) (models.Book, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeAt(ctx, index)
}

// RemoveExpected is RemoveAt that only removes when the book at index still
// has the title, author and added date of expected. A mismatch removes
// nothing and returns ErrChanged.
func (c *Catalog) RemoveExpected(ctx context.Context, index int, expected models.Book) (models.Book, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index >= 0 && index < len(c.books) {
		current := c.books[index]
		if current.Title != expected.Title || current.Author != expected.Author ||
			!current.AddedDate.Equal(expected.AddedDate.Time) {
			return models.Book{}, false, ErrChanged
		}
	}
	return c.removeAt(ctx, index)
}

// removeAt must be called with c.mu held
func (c *Catalog) removeAt(ctx context.Context, index int) (models.Book, bool, error) {
	if index < 0 || index >= len(c.books) {
		c.logger.Debug("Ignoring out of range removal",
			zap.Int("index", index),
			zap.Int("book_count", len(c.books)),
		)
		return models.Book{}, false, nil
	}

	removed := c.books[index]
	c.books = append(c.books[:index:index], c.books[index+1:]...)

	if err := c.save(ctx); err != nil {
		return removed, true, err
	}

	c.logger.Info("Book removed",
		zap.String("title", removed.Title),
		zap.Int("position", index),
	)
	return removed, true, nil
}

// Search filters the catalog, see Search
func (c *Catalog) Search(term string, field models.SearchField) []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Search(c.books, term, field)
}

// Stats computes statistics over the current catalog
func (c *Catalog) Stats() models.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ComputeStats(c.books)
}

// save must be called with c.mu held
func (c *Catalog) save(ctx context.Context) error {
	if err := c.db.Save(ctx, c.books); err != nil {
		c.logger.Error("Failed to save library",
			zap.Error(err),
			zap.Int("book_count", len(c.books)),
		)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
