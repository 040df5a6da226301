package ch

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"booklib/internal/models"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Load returns every stored book in catalog order.
// The books table is managed via migrations (see migrations/ directory).
func (db *ClickHouseDB) Load(ctx context.Context) ([]models.Book, error) {
	rows, err := db.conn.Query(ctx, `
		SELECT title, author, publication_year, genre, read_status, added_date
		FROM books
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var (
			book      models.Book
			year      int32
			addedDate time.Time
		)
		if err := rows.Scan(&book.Title, &book.Author, &year, &book.Genre, &book.ReadStatus, &addedDate); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		book.PublicationYear = int(year)
		book.AddedDate = models.NewTimestamp(addedDate)
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

// Save replaces the table contents with books. Truncate and insert are two
// statements, so a failed insert leaves the table empty until the next Save.
func (db *ClickHouseDB) Save(ctx context.Context, books []models.Book) error {
	if err := db.conn.Exec(ctx, `TRUNCATE TABLE IF EXISTS books`); err != nil {
		return fmt.Errorf("failed to truncate books: %w", err)
	}
	if len(books) == 0 {
		return nil
	}

	batch, err := db.conn.PrepareBatch(ctx, `
		INSERT INTO books (position, title, author, publication_year, genre, read_status, added_date)`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for i, book := range books {
		err := batch.Append(
			uint32(i),
			book.Title,
			book.Author,
			int32(book.PublicationYear),
			book.Genre,
			book.ReadStatus,
			book.AddedDate.Time,
		)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append book %d: %w", i, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to insert books: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
