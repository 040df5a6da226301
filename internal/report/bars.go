package report

import (
	"fmt"
	"strings"

	"booklib/internal/models"
)

// Bar is one labelled value of a chart
type Bar struct {
	Label string
	Count int
}

// ReadBars splits the library into read and unread
func ReadBars(stats models.Stats) []Bar {
	return []Bar{
		{Label: "Read", Count: stats.ReadBooks},
		{Label: "Unread", Count: stats.UnreadBooks()},
	}
}

// CountBars converts genre or author counts, keeping their order
func CountBars(entries []models.CountEntry) []Bar {
	bars := make([]Bar, 0, len(entries))
	for _, e := range entries {
		bars = append(bars, Bar{Label: e.Name, Count: e.Count})
	}
	return bars
}

// DecadeBars converts decade counts, labelled like "1960s"
func DecadeBars(entries []models.DecadeEntry) []Bar {
	bars := make([]Bar, 0, len(entries))
	for _, e := range entries {
		bars = append(bars, Bar{Label: fmt.Sprintf("%ds", e.Decade), Count: e.Count})
	}
	return bars
}

// BarLine draws count scaled against maxCount into at most width cells.
// A non-zero count always gets at least one cell.
func BarLine(count, maxCount, width int) string {
	if count <= 0 || maxCount <= 0 || width <= 0 {
		return ""
	}
	n := count * width / maxCount
	if n == 0 {
		n = 1
	}
	return strings.Repeat(barRune, n)
}

// FormatPercent renders a percentage with one decimal
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FoundMessage is the search result count line
func FoundMessage(n int) string {
	if n == 1 {
		return "Found 1 result"
	}
	return fmt.Sprintf("Found %d results", n)
}
