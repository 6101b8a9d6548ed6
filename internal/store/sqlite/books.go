package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, title, author, description,
	read_date, rating, genre_id, image_id, blur_hash, is_planned, is_favorite`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		createdAt   string
		updatedAt   string
		description sql.NullString
		readDate    string
		imageID     sql.NullString
		blurHash    sql.NullString
		isPlanned   int
		isFavorite  int
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Author,
		&description,
		&readDate,
		&b.Rating,
		&b.GenreID,
		&imageID,
		&blurHash,
		&isPlanned,
		&isFavorite,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	b.Date, err = parseTime(readDate)
	if err != nil {
		return nil, err
	}

	// Optional strings.
	if description.Valid {
		b.Description = description.String
	}
	if imageID.Valid {
		b.ImageID = imageID.String
	}
	if blurHash.Valid {
		b.BlurHash = blurHash.String
	}

	// Boolean fields.
	b.Planned = isPlanned != 0
	b.Favorite = isFavorite != 0

	return &b, nil
}

// CreateBook inserts a new book and assigns the generated row id to b.ID.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			created_at, updated_at, title, author, description,
			read_date, rating, genre_id, image_id, blur_hash, is_planned, is_favorite
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
		b.Title,
		b.Author,
		nullString(b.Description),
		formatTime(b.Date),
		b.Rating,
		b.GenreID,
		nullString(b.ImageID),
		nullString(b.BlurHash),
		boolToInt(b.Planned),
		boolToInt(b.Favorite),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	b.ID = id

	s.emitter.Emit(store.BookEvent{Type: store.BookCreated, BookID: id, Book: b})
	return nil
}

// GetBook retrieves a book by id.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook performs a full row update on an existing book.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			created_at = ?,
			updated_at = ?,
			title = ?,
			author = ?,
			description = ?,
			read_date = ?,
			rating = ?,
			genre_id = ?,
			image_id = ?,
			blur_hash = ?,
			is_planned = ?,
			is_favorite = ?
		WHERE id = ?`,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
		b.Title,
		b.Author,
		nullString(b.Description),
		formatTime(b.Date),
		b.Rating,
		b.GenreID,
		nullString(b.ImageID),
		nullString(b.BlurHash),
		boolToInt(b.Planned),
		boolToInt(b.Favorite),
		b.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	s.emitter.Emit(store.BookEvent{Type: store.BookUpdated, BookID: b.ID, Book: b})
	return nil
}

// DeleteBook removes a book by id.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	s.emitter.Emit(store.BookEvent{Type: store.BookDeleted, BookID: id})
	return nil
}

// SetBookFavorite updates only the favorite flag of a book. The single-column
// conditional update cannot lose concurrent edits to the rest of the row.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) SetBookFavorite(ctx context.Context, id int64, favorite bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET is_favorite = ?, updated_at = ?
		WHERE id = ?`,
		boolToInt(favorite),
		formatTime(nowUTC()),
		id,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	b, err := s.GetBook(ctx, id)
	if err != nil {
		return err
	}
	s.emitter.Emit(store.BookEvent{Type: store.BookUpdated, BookID: id, Book: b})
	return nil
}

// ListBooks returns all books, newest entries first.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY id DESC`)
}

// ListPlannedBooks returns books whose rating is unset, newest first.
func (s *Store) ListPlannedBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE rating <= 0 ORDER BY id DESC`)
}

// ListRatedBooks returns books whose rating is set, newest first.
func (s *Store) ListRatedBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE rating > 0 ORDER BY id DESC`)
}

// ListFavoriteBooks returns favorited books, newest first.
func (s *Store) ListFavoriteBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE is_favorite = 1 ORDER BY id DESC`)
}

// SearchRatedBooks returns rated books whose title or author contains the
// query, case-insensitively. An empty query returns all rated books.
//
// Matching happens in Go with Unicode case folding: sqlite's LOWER() folds
// ASCII only, which would leave Cyrillic (or any non-ASCII) titles
// unsearchable.
func (s *Store) SearchRatedBooks(ctx context.Context, query string) ([]*domain.Book, error) {
	if strings.TrimSpace(query) == "" {
		return s.ListRatedBooks(ctx)
	}

	books, err := s.ListRatedBooks(ctx)
	if err != nil {
		return nil, err
	}

	caser := cases.Fold()
	needle := caser.String(query)

	var matched []*domain.Book
	for _, b := range books {
		if strings.Contains(caser.String(b.Title), needle) ||
			strings.Contains(caser.String(b.Author), needle) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// CountBooks returns the number of diary entries.
func (s *Store) CountBooks(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM books`).Scan(&n)
	return n, err
}

// queryBooks runs a books SELECT and scans all rows.
func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
