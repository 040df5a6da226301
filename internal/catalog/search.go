package catalog

import (
	"strings"

	"booklib/internal/models"
)

// Search returns the books whose selected field contains term, ignoring
// case, in their original order. An empty term matches every book; an
// unknown field matches none. books is not modified.
func Search(books []models.Book, term string, field models.SearchField) []models.Book {
	term = strings.ToLower(term)

	results := []models.Book{}
	for _, book := range books {
		var value string
		switch field {
		case models.FieldTitle:
			value = book.Title
		case models.FieldAuthor:
			value = book.Author
		case models.FieldGenre:
			value = book.Genre
		default:
			continue
		}

		if strings.Contains(strings.ToLower(value), term) {
			results = append(results, book)
		}
	}
	return results
}
