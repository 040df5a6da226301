package catalog

import (
	"sort"

	"booklib/internal/models"
)

// ComputeStats aggregates the catalog in a single pass.
//
// Genre and author breakdowns are ordered by count descending, then by name
// ascending. Decades are ordered ascending. PercentRead is 0 for an empty
// catalog.
func ComputeStats(books []models.Book) models.Stats {
	stats := models.Stats{
		TotalBooks: len(books),
		Genres:     []models.CountEntry{},
		Authors:    []models.CountEntry{},
		Decades:    []models.DecadeEntry{},
	}

	genreCounts := make(map[string]int)
	authorCounts := make(map[string]int)
	decadeCounts := make(map[int]int)

	for _, book := range books {
		if book.ReadStatus {
			stats.ReadBooks++
		}
		genreCounts[book.Genre]++
		authorCounts[book.Author]++
		decadeCounts[Decade(book.PublicationYear)]++
	}

	if stats.TotalBooks > 0 {
		stats.PercentRead = float64(stats.ReadBooks) / float64(stats.TotalBooks) * 100
	}

	stats.Genres = sortedCounts(genreCounts)
	stats.Authors = sortedCounts(authorCounts)

	for decade, count := range decadeCounts {
		stats.Decades = append(stats.Decades, models.DecadeEntry{
			Decade: decade,
			Count:  count,
		})
	}
	sort.Slice(stats.Decades, func(i, j int) bool {
		return stats.Decades[i].Decade < stats.Decades[j].Decade
	})

	return stats
}

// Decade truncates year to its decade, rounding toward negative infinity
func Decade(year int) int {
	d := year / 10
	if year%10 < 0 {
		d--
	}
	return d * 10
}

func sortedCounts(counts map[string]int) []models.CountEntry {
	entries := make([]models.CountEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, models.CountEntry{
			Name:  name,
			Count: count,
		})
	}

	// Sort by count descending, then by name
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
