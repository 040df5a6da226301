package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"booklib/internal/models"
)

func sampleBooks() []models.Book {
	added := models.NewTimestamp(time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local))
	return []models.Book{
		{Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965, Genre: "Science Fiction", ReadStatus: true, AddedDate: added},
		{Title: "1984", Author: "George Orwell", PublicationYear: 1949, Genre: "Fiction", AddedDate: added},
	}
}

func TestBarLine(t *testing.T) {
	testCases := []struct {
		name     string
		count    int
		maxCount int
		width    int
		expected int
	}{
		{"full", 4, 4, 20, 20},
		{"half", 2, 4, 20, 10},
		{"tiny count still visible", 1, 1000, 20, 1},
		{"zero", 0, 4, 20, 0},
		{"no max", 3, 0, 20, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line := BarLine(tc.count, tc.maxCount, tc.width)
			assert.Equal(t, tc.expected, strings.Count(line, barRune))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50.0%", FormatPercent(50))
	assert.Equal(t, "33.3%", FormatPercent(100.0/3))
	assert.Equal(t, "0.0%", FormatPercent(0))
}

func TestFoundMessage(t *testing.T) {
	assert.Equal(t, "Found 0 results", FoundMessage(0))
	assert.Equal(t, "Found 1 result", FoundMessage(1))
	assert.Equal(t, "Found 2 results", FoundMessage(2))
}

func TestDecadeBars(t *testing.T) {
	bars := DecadeBars([]models.DecadeEntry{{Decade: 1940, Count: 1}, {Decade: 1960, Count: 2}})
	assert.Equal(t, []Bar{{Label: "1940s", Count: 1}, {Label: "1960s", Count: 2}}, bars)
}

func TestRenderer_BookList(t *testing.T) {
	r := NewRenderer()

	out := r.BookList(sampleBooks())
	assert.Contains(t, out, "1. Dune")
	assert.Contains(t, out, "2. 1984")
	assert.Contains(t, out, "by Frank Herbert")
	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "Unread")
	assert.Contains(t, out, "2024-03-01 10:00:00")
	assert.Less(t, strings.Index(out, "Dune"), strings.Index(out, "1984"))

	assert.Contains(t, r.BookList(nil), EmptyLibraryMessage)
}

func TestRenderer_SearchResults(t *testing.T) {
	r := NewRenderer()

	assert.Contains(t, r.SearchResults(sampleBooks()[:1]), "Found 1 result")
	assert.Contains(t, r.SearchResults(nil), "Found 0 results")
}

func TestRenderer_Stats(t *testing.T) {
	r := NewRenderer()
	stats := models.Stats{
		TotalBooks:  2,
		ReadBooks:   1,
		PercentRead: 50,
		Genres:      []models.CountEntry{{Name: "Fiction", Count: 1}, {Name: "Science Fiction", Count: 1}},
		Authors:     []models.CountEntry{{Name: "Frank Herbert", Count: 1}, {Name: "George Orwell", Count: 1}},
		Decades:     []models.DecadeEntry{{Decade: 1940, Count: 1}, {Decade: 1960, Count: 1}},
	}

	out := r.Stats(stats)
	for _, want := range []string{
		"Total books: 2", "Read: 1", "Unread: 1", "Percent read: 50.0%",
		"Read vs unread", "Books by genre", "Books by decade", "1940s", "1960s", "Science Fiction",
	} {
		assert.Contains(t, out, want)
	}

	assert.Contains(t, r.Stats(models.Stats{}), EmptyStatsMessage)
}
