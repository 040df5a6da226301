package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"booklib/internal/models"
	"booklib/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleBooks() []models.Book {
	return []models.Book{
		{
			Title:           "Dune",
			Author:          "Frank Herbert",
			PublicationYear: 1965,
			Genre:           "Science Fiction",
			ReadStatus:      true,
			AddedDate:       models.NewTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)),
		},
		{
			Title:           "1984",
			Author:          "George Orwell",
			PublicationYear: 1949,
			Genre:           "Fiction",
			ReadStatus:      false,
			AddedDate:       models.NewTimestamp(time.Date(2025, 1, 2, 3, 4, 6, 0, time.Local)),
		},
	}
}

func TestJSONFile_LoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "library.json"), zap.NewNop())

	books, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestJSONFile_LoadBlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	books, err := New(path, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)

	// blank files are not quarantined
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestJSONFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "library.json"), zap.NewNop())

	require.NoError(t, store.Save(ctx, sampleBooks()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleBooks(), loaded)
}

func TestJSONFile_RoundTripUTCClock(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "library.json"), zap.NewNop())

	books := sampleBooks()
	books[0].AddedDate = models.NewTimestamp(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, books))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, books, loaded)
}

func TestJSONFile_SaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.json")
	store := New(path, zap.NewNop())

	require.NoError(t, store.Save(ctx, sampleBooks()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, loaded))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestJSONFile_SaveFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.json")
	store := New(path, zap.NewNop())

	require.NoError(t, store.Save(ctx, sampleBooks()[:1]))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := `[
    {
        "title": "Dune",
        "author": "Frank Herbert",
        "publication_year": 1965,
        "genre": "Science Fiction",
        "read_status": true,
        "added_date": "2025-01-02 03:04:05"
    }
]
`
	assert.Equal(t, expected, string(data))
}

func TestJSONFile_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.json")
	store := New(path, zap.NewNop())

	require.NoError(t, store.Save(ctx, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestJSONFile_SaveKeepsSpecialCharacters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.json")
	store := New(path, zap.NewNop())

	books := []models.Book{{Title: "Q&A <Vol. 1>", Author: "Zoë"}}
	require.NoError(t, store.Save(ctx, books))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Q&A <Vol. 1>"`)
}

func TestJSONFile_CorruptFileIsQuarantined(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))

	store := New(path, zap.NewNop())
	store.now = func() time.Time { return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC) }

	books, err := store.Load(context.Background())
	assert.Empty(t, books)

	var corrupt *storage.CorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, path, corrupt.Path)
	assert.Equal(t, path+".corrupt-20250506-070809", corrupt.QuarantinePath)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "original file should be moved aside")

	moved, readErr := os.ReadFile(corrupt.QuarantinePath)
	require.NoError(t, readErr)
	assert.Equal(t, `{"not": "an array"`, string(moved))
}

func TestJSONFile_QuarantineRenameFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := New(path, zap.NewNop())
	store.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrPermission}
	}

	_, err := store.Load(context.Background())

	var corrupt *storage.CorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.Empty(t, corrupt.QuarantinePath)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data), "corrupt file must stay in place")
}

func TestJSONFile_WrongShapeIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "X", "publication_year": "nineteen"}]`), 0o644))

	_, err := New(path, zap.NewNop()).Load(context.Background())

	var corrupt *storage.CorruptError
	assert.True(t, errors.As(err, &corrupt))
}

func TestJSONFile_SaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "library.json")
	store := New(path, zap.NewNop())

	err := store.Save(context.Background(), sampleBooks())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to write library file"))
}
