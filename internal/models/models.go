package models

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the on-disk format of Book.AddedDate
const TimestampLayout = "2006-01-02 15:04:05"

// Genres lists the genres offered by the add flows. The catalog itself
// accepts any genre text.
var Genres = []string{
	"Fiction",
	"Non-Fiction",
	"Biography",
	"Science Fiction",
	"Mystery",
	"Romance",
	"Horror",
	"Fantasy",
}

// MinPublicationYear is the lowest year offered by the add flows
const MinPublicationYear = 1800

// Book represents a book in the library
type Book struct {
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	Genre           string    `json:"genre"`
	ReadStatus      bool      `json:"read_status"`
	AddedDate       Timestamp `json:"added_date"`
}

// Timestamp is a local wall-clock time serialized as "YYYY-MM-DD HH:MM:SS"
type Timestamp struct {
	time.Time
}

// NewTimestamp converts t to local time truncated to whole seconds, matching
// the stored precision
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Local().Truncate(time.Second)}
}

// String formats the timestamp in TimestampLayout, in local time
func (t Timestamp) String() string {
	return t.Local().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("added_date must be a string, got %s", s)
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s[1:len(s)-1], time.Local)
	if err != nil {
		return fmt.Errorf("invalid added_date: %w", err)
	}
	t.Time = parsed
	return nil
}

// SearchField selects which book field a search matches against
type SearchField string

const (
	FieldTitle  SearchField = "Title"
	FieldAuthor SearchField = "Author"
	FieldGenre  SearchField = "Genre"
)

// SearchFields lists the supported search fields in display order
var SearchFields = []SearchField{FieldTitle, FieldAuthor, FieldGenre}

// ParseSearchField parses a field name case-insensitively
func ParseSearchField(s string) (SearchField, error) {
	for _, f := range SearchFields {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown search field %q (want Title, Author or Genre)", s)
}

// CountEntry is one row of a count-descending breakdown
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DecadeEntry is one row of the per-decade breakdown
type DecadeEntry struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// Stats represents aggregate library statistics
type Stats struct {
	TotalBooks  int           `json:"total_books"`
	ReadBooks   int           `json:"read_books"`
	PercentRead float64       `json:"percent_read"`
	Genres      []CountEntry  `json:"genres"`
	Authors     []CountEntry  `json:"authors"`
	Decades     []DecadeEntry `json:"decades"`
}

// UnreadBooks returns the number of books not yet read
func (s Stats) UnreadBooks() int {
	return s.TotalBooks - s.ReadBooks
}
