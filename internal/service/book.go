// Package service provides the business logic layer for the book diary.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/errors"
	"github.com/ElenaBalahnina123/BookDiary/internal/media/images"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
	"github.com/ElenaBalahnina123/BookDiary/internal/validation"
)

// BookWithGenre is a diary entry joined with its genre label from the mirror.
type BookWithGenre struct {
	*domain.Book
	GenreLabel string `json:"genre_label"`
}

// bookAttrs is the validated subset of a book on save.
type bookAttrs struct {
	Title   string `json:"title" validate:"required,max=500"`
	Author  string `json:"author" validate:"required,max=500"`
	Rating  int    `json:"rating" validate:"gte=0,lte=10"`
	GenreID string `json:"genre_id" validate:"required"`
}

// BookService orchestrates diary entry operations: persistence, genre label
// joins, and cover image lifecycle.
type BookService struct {
	store     store.Store
	images    *images.Cache
	validator *validation.Validator
	genres    *genreDirectory
	feed      *BookFeed
	logger    *slog.Logger
}

// NewBookService creates a new book service. feed must be the same BookFeed
// the store emits into, or WatchBook streams will stay silent.
func NewBookService(st store.Store, imageCache *images.Cache, validator *validation.Validator, feed *BookFeed, logger *slog.Logger) *BookService {
	return &BookService{
		store:     st,
		images:    imageCache,
		validator: validator,
		genres:    newGenreDirectory(st),
		feed:      feed,
		logger:    logger,
	}
}

// InvalidateGenres drops the memoized genre directory so the next join
// reloads it from the store. Called after a catalog sync changes the mirror.
func (s *BookService) InvalidateGenres() {
	s.genres.Invalidate()
	s.logger.Debug("genre directory invalidated")
}

// ListBooks returns all diary entries with genre labels, newest first.
func (s *BookService) ListBooks(ctx context.Context) ([]*BookWithGenre, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return s.join(ctx, books)
}

// ListPlannedBooks returns unrated entries with genre labels, newest first.
func (s *BookService) ListPlannedBooks(ctx context.Context) ([]*BookWithGenre, error) {
	books, err := s.store.ListPlannedBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list planned books: %w", err)
	}
	return s.join(ctx, books)
}

// ListRatedBooks returns rated entries with genre labels, newest first.
func (s *BookService) ListRatedBooks(ctx context.Context) ([]*BookWithGenre, error) {
	books, err := s.store.ListRatedBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rated books: %w", err)
	}
	return s.join(ctx, books)
}

// ListFavoriteBooks returns favorited entries with genre labels, newest first.
func (s *BookService) ListFavoriteBooks(ctx context.Context) ([]*BookWithGenre, error) {
	books, err := s.store.ListFavoriteBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list favorite books: %w", err)
	}
	return s.join(ctx, books)
}

// SearchRatedBooks returns rated entries matching the query by title or
// author, case-insensitively. An empty query returns all rated entries.
func (s *BookService) SearchRatedBooks(ctx context.Context, query string) ([]*BookWithGenre, error) {
	books, err := s.store.SearchRatedBooks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search rated books: %w", err)
	}
	return s.join(ctx, books)
}

// GetBook returns one entry with its genre label.
func (s *BookService) GetBook(ctx context.Context, id int64) (*BookWithGenre, error) {
	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("book %d not found", id)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	joined, err := s.join(ctx, []*domain.Book{book})
	if err != nil {
		return nil, err
	}
	return joined[0], nil
}

// SaveBook validates and persists an entry. A zero ID inserts and assigns a
// fresh one; a nonzero ID replaces the existing row. The planned flag is
// derived from the rating: an unrated entry is planned reading.
func (s *BookService) SaveBook(ctx context.Context, b *domain.Book) error {
	attrs := bookAttrs{
		Title:   b.Title,
		Author:  b.Author,
		Rating:  b.Rating,
		GenreID: b.GenreID,
	}
	if err := s.validator.Validate(attrs); err != nil {
		return err
	}

	// The genre must exist in the mirror before the entry can reference it.
	labels, err := s.genres.Load(ctx)
	if err != nil {
		return fmt.Errorf("load genre directory: %w", err)
	}
	if _, ok := labels[b.GenreID]; !ok {
		return errors.Validationf("unknown genre %s", b.GenreID)
	}

	b.Planned = !b.Rated()

	if b.ID == 0 {
		b.InitTimestamps()
		if err := s.store.CreateBook(ctx, b); err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		s.logger.Info("book created", "book_id", b.ID, "title", b.Title)
		return nil
	}

	b.Touch()
	if err := s.store.UpdateBook(ctx, b); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("book %d not found", b.ID)
		}
		return fmt.Errorf("update book: %w", err)
	}
	s.logger.Info("book updated", "book_id", b.ID, "title", b.Title)
	return nil
}

// DeleteBook removes an entry. Its cover image, if any, stays in the cache;
// images are only reclaimed when superseded by AttachImage.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("book %d not found", id)
		}
		return fmt.Errorf("delete book: %w", err)
	}
	s.logger.Info("book deleted", "book_id", id)
	return nil
}

// SetFavorite flips the favorite flag without touching the rest of the row,
// so it cannot race a concurrent full save into losing fields.
func (s *BookService) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	if err := s.store.SetBookFavorite(ctx, id, favorite); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("book %d not found", id)
		}
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

// AttachImage stores a new cover for the book, computes its BlurHash
// placeholder, and updates the entry. The previous cover, if any, is deleted
// from the cache once the row points at the new one.
func (s *BookService) AttachImage(ctx context.Context, bookID int64, r io.Reader) (*BookWithGenre, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("book %d not found", bookID)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	imageID, err := s.images.Store(r)
	if err != nil {
		return nil, err
	}

	img, err := s.images.Fetch(imageID)
	if err != nil || img == nil {
		return nil, fmt.Errorf("fetch stored image %s: %w", imageID, err)
	}

	hash, err := images.ComputeBlurHash(img)
	if err != nil {
		s.logger.Warn("blurhash computation failed", "image_id", imageID, "error", err)
		hash = ""
	}

	oldImageID := book.ImageID
	book.ImageID = imageID
	book.BlurHash = hash
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		// Roll back the orphaned upload; the row still points at the old cover.
		if delErr := s.images.Delete(imageID); delErr != nil {
			s.logger.Warn("failed to clean up orphaned image", "image_id", imageID, "error", delErr)
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	if oldImageID != "" {
		if err := s.images.Delete(oldImageID); err != nil {
			s.logger.Warn("failed to delete superseded image", "image_id", oldImageID, "error", err)
		}
	}

	s.logger.Info("cover attached", "book_id", bookID, "image_id", imageID)
	return s.GetBook(ctx, bookID)
}

// WatchBook streams snapshots of one entry: the current state immediately,
// then a fresh snapshot after every persisted change. The channel closes when
// the entry is deleted or ctx ends. An unknown id fails up front with a not
// found error.
func (s *BookService) WatchBook(ctx context.Context, id int64) (<-chan *BookWithGenre, error) {
	first, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	sub := s.feed.subscribe(id)
	out := make(chan *BookWithGenre, 1)
	out <- first

	go func() {
		defer close(out)
		defer s.feed.unsubscribe(sub)

		for {
			select {
			case ev := <-sub.ch:
				if ev.Type == store.BookDeleted {
					return
				}
				snapshot, err := s.GetBook(ctx, id)
				if err != nil {
					s.logger.Warn("watch snapshot failed", "book_id", id, "error", err)
					return
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// join resolves genre labels for a batch of books. A book whose genre id is
// missing from the mirror is a data integrity violation and fails the whole
// call; silently showing an unlabeled genre would hide a sync bug.
func (s *BookService) join(ctx context.Context, books []*domain.Book) ([]*BookWithGenre, error) {
	labels, err := s.genres.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genre directory: %w", err)
	}

	out := make([]*BookWithGenre, 0, len(books))
	for _, b := range books {
		label, ok := labels[b.GenreID]
		if !ok {
			return nil, errors.Integrityf("book %d references unknown genre %s", b.ID, b.GenreID)
		}
		out = append(out, &BookWithGenre{Book: b, GenreLabel: label})
	}
	return out, nil
}
