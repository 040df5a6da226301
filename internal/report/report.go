// Package report renders the catalog for terminals: book cards with
// read/unread badges, a summary block and horizontal bar charts.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"booklib/internal/models"
)

// Badge and chart colors
var (
	ReadColor   = lipgloss.Color("#10B981")
	UnreadColor = lipgloss.Color("#EF4444")
	AccentColor = lipgloss.Color("#6366F1")
	MutedColor  = lipgloss.Color("#9CA3AF")
)

const (
	// EmptyLibraryMessage is shown when there is nothing to list
	EmptyLibraryMessage = "Your library is empty. Add a book to get started."
	// EmptyStatsMessage is shown instead of statistics for an empty library
	EmptyStatsMessage = "No statistics yet. Add some books first."

	defaultBarWidth = 30
	barRune         = "█"
)

// Styles groups the lipgloss styles used by the renderer
type Styles struct {
	Title  lipgloss.Style
	Card   lipgloss.Style
	Bold   lipgloss.Style
	Muted  lipgloss.Style
	Read   lipgloss.Style
	Unread lipgloss.Style
	Bar    lipgloss.Style
}

// DefaultStyles returns the standard palette
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(AccentColor).MarginBottom(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1),
		Bold:   lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(MutedColor),
		Read:   lipgloss.NewStyle().Bold(true).Foreground(ReadColor),
		Unread: lipgloss.NewStyle().Bold(true).Foreground(UnreadColor),
		Bar:    lipgloss.NewStyle().Foreground(AccentColor),
	}
}

// Renderer turns catalog data into styled terminal text
type Renderer struct {
	styles   Styles
	barWidth int
}

// NewRenderer creates a renderer with the default styles
func NewRenderer() *Renderer {
	return &Renderer{
		styles:   DefaultStyles(),
		barWidth: defaultBarWidth,
	}
}

// Badge renders the read status label
func (r *Renderer) Badge(read bool) string {
	if read {
		return r.styles.Read.Render("● Read")
	}
	return r.styles.Unread.Render("○ Unread")
}

// Card renders one book. position is 1-based, as shown to the user.
func (r *Renderer) Card(position int, b models.Book) string {
	header := r.styles.Bold.Render(fmt.Sprintf("%d. %s", position, b.Title))
	body := []string{
		header + "  " + r.Badge(b.ReadStatus),
		"by " + b.Author,
		r.styles.Muted.Render(fmt.Sprintf("%d · %s · added %s", b.PublicationYear, b.Genre, b.AddedDate)),
	}
	return r.styles.Card.Render(strings.Join(body, "\n"))
}

// BookList renders every book as a card, or the empty library message
func (r *Renderer) BookList(books []models.Book) string {
	if len(books) == 0 {
		return r.styles.Muted.Render(EmptyLibraryMessage)
	}

	cards := make([]string, 0, len(books))
	for i, b := range books {
		cards = append(cards, r.Card(i+1, b))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// SearchResults renders search matches with a result count header
func (r *Renderer) SearchResults(books []models.Book) string {
	header := r.styles.Title.Render(FoundMessage(len(books)))
	if len(books) == 0 {
		return header
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, r.BookList(books))
}

// Stats renders the summary and all three charts
func (r *Renderer) Stats(stats models.Stats) string {
	if stats.TotalBooks == 0 {
		return r.styles.Muted.Render(EmptyStatsMessage)
	}

	summary := strings.Join([]string{
		fmt.Sprintf("Total books: %d", stats.TotalBooks),
		fmt.Sprintf("Read: %d", stats.ReadBooks),
		fmt.Sprintf("Unread: %d", stats.UnreadBooks()),
		fmt.Sprintf("Percent read: %s", FormatPercent(stats.PercentRead)),
	}, "\n")

	sections := []string{
		r.styles.Title.Render("Library statistics"),
		r.styles.Card.Render(summary),
		r.Chart("Read vs unread", ReadBars(stats)),
		r.Chart("Books by genre", CountBars(stats.Genres)),
		r.Chart("Books by decade", DecadeBars(stats.Decades)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Chart renders a titled horizontal bar chart
func (r *Renderer) Chart(title string, bars []Bar) string {
	labelWidth := 0
	maxCount := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		maxCount = max(maxCount, b.Count)
	}

	label := lipgloss.NewStyle().Width(labelWidth)
	lines := []string{r.styles.Bold.Render(title)}
	for _, b := range bars {
		line := label.Render(b.Label) + " " +
			r.styles.Bar.Render(BarLine(b.Count, maxCount, r.barWidth)) + " " +
			strconv.Itoa(b.Count)
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().MarginTop(1).Render(strings.Join(lines, "\n"))
}
