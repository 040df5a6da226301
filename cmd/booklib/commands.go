package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"booklib/internal/app"
	"booklib/internal/catalog"
	"booklib/internal/models"
	"booklib/internal/report"
)

var (
	addTitle  string
	addAuthor string
	addYear   int
	addGenre  string
	addRead   bool

	searchField string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every book in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(cat *catalog.Catalog) error {
			fmt.Fprintln(cmd.OutOrStdout(), report.NewRenderer().BookList(cat.All()))
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book",
	Long: `Adds a book to the end of the library.

Example:
  booklib add --title "Dune" --author "Frank Herbert" --year 1965 --genre "Science Fiction" --read`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(addTitle)
		author := strings.TrimSpace(addAuthor)
		if title == "" || author == "" {
			return errors.New("please fill in both --title and --author")
		}

		year := addYear
		if !cmd.Flags().Changed("year") {
			year = time.Now().Year()
		}

		return withCatalog(cmd, func(cat *catalog.Catalog) error {
			book, err := cat.Add(cmd.Context(), title, author, year, addGenre, addRead)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.NewRenderer().Card(cat.Len(), book))
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove N",
	Short: "Remove the book at position N (as shown by list)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[0])
		}

		return withCatalog(cmd, func(cat *catalog.Catalog) error {
			removed, ok, err := cat.RemoveAt(cmd.Context(), position-1)
			if !ok {
				return fmt.Errorf("there is no book number %d", position)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q by %s\n", removed.Title, removed.Author)
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search books by title, author or genre",
	Long: `Case-insensitive substring search. An empty term lists every book.

Example:
  booklib search --field author orwell`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := models.ParseSearchField(searchField)
		if err != nil {
			return err
		}
		term := ""
		if len(args) == 1 {
			term = args[0]
		}

		return withCatalog(cmd, func(cat *catalog.Catalog) error {
			fmt.Fprintln(cmd.OutOrStdout(), report.NewRenderer().SearchResults(cat.Search(term, field)))
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics and charts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(cat *catalog.Catalog) error {
			fmt.Fprintln(cmd.OutOrStdout(), report.NewRenderer().Stats(cat.Stats()))
			return nil
		})
	},
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "book title (required)")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "book author (required)")
	addCmd.Flags().IntVar(&addYear, "year", 0, "publication year (default current year)")
	addCmd.Flags().StringVar(&addGenre, "genre", models.Genres[0], "genre: "+strings.Join(models.Genres, ", "))
	addCmd.Flags().BoolVar(&addRead, "read", false, "mark the book as read")

	searchCmd.Flags().StringVar(&searchField, "field", string(models.FieldTitle), "field to search: Title, Author or Genre")
}

// withCatalog opens the configured library, runs fn and closes it again
func withCatalog(cmd *cobra.Command, fn func(cat *catalog.Catalog) error) error {
	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	return fn(application.Catalog())
}
