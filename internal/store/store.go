// Package store defines the persistence interface for the book diary and its
// sentinel errors. The sqlite subpackage provides the implementation.
package store

import (
	"context"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
)

// Store is the persistent store for diary entries, the genre mirror, and
// durable preferences. Implementations must be safe for concurrent use; no
// cross-call transactional guarantees are provided beyond what each method
// documents.
type Store interface {
	// CreateBook inserts a new book and assigns its ID.
	CreateBook(ctx context.Context, b *domain.Book) error
	// GetBook returns a book by id. Returns ErrNotFound if it does not exist.
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	// UpdateBook performs a full row replace. Returns ErrNotFound for unknown ids.
	UpdateBook(ctx context.Context, b *domain.Book) error
	// DeleteBook removes a book by id. Returns ErrNotFound for unknown ids.
	DeleteBook(ctx context.Context, id int64) error
	// SetBookFavorite flips the favorite flag with a single conditional update,
	// leaving the rest of the row untouched. Returns ErrNotFound for unknown ids.
	SetBookFavorite(ctx context.Context, id int64, favorite bool) error

	// ListBooks returns all books, newest first.
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	// ListPlannedBooks returns books with no rating set, newest first.
	ListPlannedBooks(ctx context.Context) ([]*domain.Book, error)
	// ListRatedBooks returns books with a rating set, newest first.
	ListRatedBooks(ctx context.Context) ([]*domain.Book, error)
	// ListFavoriteBooks returns favorited books, newest first.
	ListFavoriteBooks(ctx context.Context) ([]*domain.Book, error)
	// SearchRatedBooks returns rated books whose title or author contains the
	// query, case-insensitively. An empty query applies no filter.
	SearchRatedBooks(ctx context.Context, query string) ([]*domain.Book, error)
	// CountBooks returns the number of diary entries.
	CountBooks(ctx context.Context) (int64, error)

	// ListGenres returns the full genre mirror ordered by label.
	ListGenres(ctx context.Context) ([]*domain.Genre, error)
	// GetGenre returns a genre by its remote id. Returns ErrNotFound if absent.
	GetGenre(ctx context.Context, remoteID string) (*domain.Genre, error)
	// InsertGenres inserts the given genres in a single transaction.
	InsertGenres(ctx context.Context, genres []*domain.Genre) error
	// DeleteGenres deletes genres by remote id in a single transaction.
	// Unknown ids are ignored.
	DeleteGenres(ctx context.Context, remoteIDs []string) error
	// CountGenres returns the size of the genre mirror.
	CountGenres(ctx context.Context) (int64, error)

	// GetPreference returns the stored value for key, or "" when unset.
	GetPreference(ctx context.Context, key string) (string, error)
	// SetPreference durably stores value under key, replacing any previous value.
	SetPreference(ctx context.Context, key, value string) error

	Close() error
}
