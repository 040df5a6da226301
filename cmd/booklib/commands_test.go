package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against a library file in dir
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("LIBRARY_FILE", filepath.Join(dir, "library.json"))
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Your library is empty")

	_, err = run(t, dir, "add", "--title", "Dune", "--author", "Frank Herbert",
		"--year", "1965", "--genre", "Science Fiction", "--read=true")
	require.NoError(t, err)

	_, err = run(t, dir, "add", "--title", "1984", "--author", "George Orwell",
		"--year", "1949", "--genre", "Fiction", "--read=false")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "library.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Dune"`)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Dune")
	assert.Contains(t, out, "2. 1984")

	out, err = run(t, dir, "search", "--field", "author", "ORWELL")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 result")
	assert.Contains(t, out, "1984")

	out, err = run(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Percent read: 50.0%")
	assert.Contains(t, out, "1960s")

	out, err = run(t, dir, "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "Dune"`)

	_, err = run(t, dir, "remove", "5")
	assert.Error(t, err)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Dune")
	assert.Contains(t, out, "1. 1984")
}

func TestCLI_AddRequiresTitleAndAuthor(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "add", "--title", "  ", "--author", "Someone")
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "library.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_SearchRejectsUnknownField(t *testing.T) {
	_, err := run(t, t.TempDir(), "search", "--field", "isbn", "x")
	assert.Error(t, err)
}
