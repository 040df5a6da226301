// Package file persists the catalog as a single indented JSON array.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"booklib/internal/models"
	"booklib/internal/storage"
)

const indent = "    "

// JSONFile is the flat-file persistence adapter
type JSONFile struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
	rename func(oldpath, newpath string) error
}

// New creates an adapter for the JSON file at path. The file is not touched
// until the first Load or Save.
func New(path string, logger *zap.Logger) *JSONFile {
	return &JSONFile{
		path:   path,
		logger: logger,
		now:    time.Now,
		rename: os.Rename,
	}
}

// Path returns the backing file path
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the whole file. A missing or blank file is an empty catalog.
// Undecodable content is renamed aside and reported as *storage.CorruptError
// alongside an empty catalog. If the rename fails the CorruptError carries
// no QuarantinePath and the file is left untouched.
func (f *JSONFile) Load(ctx context.Context) ([]models.Book, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Book{}, nil
	}

	var books []models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return []models.Book{}, f.quarantine(err)
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

// Save overwrites the file with books in one write. There is no atomic
// rename, so a failed write can leave a truncated file behind.
func (f *JSONFile) Save(ctx context.Context, books []models.Book) error {
	if books == nil {
		books = []models.Book{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}

	if err := os.WriteFile(f.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write library file: %w", err)
	}
	return nil
}

// Close does nothing for the file adapter
func (f *JSONFile) Close() error {
	return nil
}

func (f *JSONFile) quarantine(decodeErr error) error {
	target := fmt.Sprintf("%s.corrupt-%s", f.path, f.now().Format("20060102-150405"))
	if err := f.rename(f.path, target); err != nil {
		f.logger.Error("Failed to quarantine corrupt library file",
			zap.String("path", f.path),
			zap.Error(err),
		)
		return &storage.CorruptError{Path: f.path, Err: decodeErr}
	}

	f.logger.Warn("Quarantined corrupt library file",
		zap.String("path", f.path),
		zap.String("quarantine_path", target),
		zap.Error(decodeErr),
	)
	return &storage.CorruptError{Path: f.path, QuarantinePath: target, Err: decodeErr}
}
