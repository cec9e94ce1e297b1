package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bookcatalog/internal/models"
)

var _ Repository = (*SQLiteStore)(nil)

var bookColumns = []string{"id", "title", "author", "publication_year", "genre"}

type SQLiteStore struct {
	db *sql.DB
	qb sq.StatementBuilderType
}

func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Question).RunWith(db),
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragma := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, stmt := range pragma {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("pragma: %w", err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS books (
	id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	publication_year INTEGER NOT NULL,
	genre TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.Book, error) {
	return s.query(ctx, s.qb.Select(bookColumns...).From("books").OrderBy("rowid"))
}

func (s *SQLiteStore) Create(ctx context.Context, draft models.Draft) (models.Book, error) {
	book := draft.Book(uuid.NewString())

	_, err := s.qb.Insert("books").
		Columns(bookColumns...).
		Values(book.ID, book.Title, book.Author, book.PublicationYear, book.Genre).
		ExecContext(ctx)
	if err != nil {
		return models.Book{}, fmt.Errorf("insert book: %w", err)
	}
	return book, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.qb.Delete("books").Where(sq.Eq{"id": id}).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// Search uses instr on lower() so the needle is never read as a LIKE pattern.
// SQLite lower() only folds ASCII letters.
func (s *SQLiteStore) Search(ctx context.Context, author, title string) ([]models.Book, error) {
	q := s.qb.Select(bookColumns...).From("books").OrderBy("rowid")
	if author != "" {
		q = q.Where("instr(lower(author), ?) > 0", strings.ToLower(author))
	}
	if title != "" {
		q = q.Where("instr(lower(title), ?) > 0", strings.ToLower(title))
	}
	return s.query(ctx, q)
}

func (s *SQLiteStore) query(ctx context.Context, q sq.SelectBuilder) ([]models.Book, error) {
	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.Genre); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return books, nil
}
