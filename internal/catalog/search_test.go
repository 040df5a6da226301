package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"booklib/internal/models"
)

func searchFixture() []models.Book {
	return []models.Book{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy"},
		{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"},
		{Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", Genre: "Fantasy"},
		{Title: "Gone Girl", Author: "Gillian Flynn", Genre: "Mystery"},
		{Title: "Steve Jobs", Author: "Walter Isaacson", Genre: "Biography"},
	}
}

func titles(books []models.Book) []string {
	result := make([]string, 0, len(books))
	for _, b := range books {
		result = append(result, b.Title)
	}
	return result
}

func TestSearch(t *testing.T) {
	testCases := []struct {
		name     string
		term     string
		field    models.SearchField
		expected []string
	}{
		{
			name:     "title substring ignores case",
			term:     "THE",
			field:    models.FieldTitle,
			expected: []string{"The Hobbit", "The Lord of the Rings"},
		},
		{
			name:     "author match keeps original order",
			term:     "tolkien",
			field:    models.FieldAuthor,
			expected: []string{"The Hobbit", "The Lord of the Rings"},
		},
		{
			name:     "genre match",
			term:     "fiction",
			field:    models.FieldGenre,
			expected: []string{"Dune"},
		},
		{
			name:     "field is respected",
			term:     "dune",
			field:    models.FieldAuthor,
			expected: []string{},
		},
		{
			name:     "no match",
			term:     "zzz",
			field:    models.FieldTitle,
			expected: []string{},
		},
		{
			name:     "unknown field matches nothing",
			term:     "",
			field:    models.SearchField("Year"),
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			results := Search(searchFixture(), tc.term, tc.field)
			assert.Equal(t, tc.expected, titles(results))
		})
	}
}

func TestSearch_EmptyTermReturnsEverything(t *testing.T) {
	books := searchFixture()

	for _, field := range models.SearchFields {
		t.Run(string(field), func(t *testing.T) {
			assert.Equal(t, books, Search(books, "", field))
		})
	}
}

func TestSearch_TitleSubsetProperty(t *testing.T) {
	books := searchFixture()
	term := "o"

	results := Search(books, term, models.FieldTitle)

	// Exactly the books whose lower-cased title contains the term, in order
	var expected []string
	for _, b := range books {
		if containsFold(b.Title, term) {
			expected = append(expected, b.Title)
		}
	}
	assert.Equal(t, expected, titles(results))
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	books := searchFixture()
	snapshot := searchFixture()

	results := Search(books, "the", models.FieldTitle)
	if len(results) > 0 {
		results[0].Title = "changed"
	}

	assert.Equal(t, snapshot, books)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
