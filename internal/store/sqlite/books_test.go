package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// makeTestBook creates a domain.Book with sensible defaults for testing.
func makeTestBook(title, author string) *domain.Book {
	b := &domain.Book{
		Title:   title,
		Author:  author,
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Rating:  7,
		GenreID: "genre-1",
	}
	b.InitTimestamps()
	return b
}

func TestCreateAndGetBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("The Glass Orchard", "M. Aldencourt")
	book.Description = "Notes on a strange year"
	book.ImageID = "img-1"
	book.BlurHash = "LEHV6nWB2yk8"
	book.Favorite = true

	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("create book: %v", err)
	}
	if book.ID == 0 {
		t.Fatal("expected CreateBook to assign an id")
	}

	got, err := s.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}

	if got.Title != book.Title {
		t.Errorf("title = %q, want %q", got.Title, book.Title)
	}
	if got.Author != book.Author {
		t.Errorf("author = %q, want %q", got.Author, book.Author)
	}
	if got.Description != book.Description {
		t.Errorf("description = %q, want %q", got.Description, book.Description)
	}
	if got.Rating != 7 {
		t.Errorf("rating = %d, want 7", got.Rating)
	}
	if got.GenreID != "genre-1" {
		t.Errorf("genre id = %q, want genre-1", got.GenreID)
	}
	if got.ImageID != "img-1" {
		t.Errorf("image id = %q, want img-1", got.ImageID)
	}
	if got.BlurHash != "LEHV6nWB2yk8" {
		t.Errorf("blur hash = %q, want LEHV6nWB2yk8", got.BlurHash)
	}
	if !got.Favorite {
		t.Error("expected favorite to round-trip")
	}
	if !got.Date.Equal(book.Date) {
		t.Errorf("date = %v, want %v", got.Date, book.Date)
	}
}

func TestGetBookNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBook(context.Background(), 9999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("Winter Letters", "Ruth Calloway")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("create book: %v", err)
	}

	book.Title = "Winter Letters, Revised"
	book.Rating = 9
	book.Touch()
	if err := s.UpdateBook(ctx, book); err != nil {
		t.Fatalf("update book: %v", err)
	}

	got, err := s.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if got.Title != "Winter Letters, Revised" {
		t.Errorf("title = %q after update", got.Title)
	}
	if got.Rating != 9 {
		t.Errorf("rating = %d, want 9", got.Rating)
	}
}

func TestUpdateBookNotFound(t *testing.T) {
	s := newTestStore(t)

	book := makeTestBook("Ghost", "Nobody")
	book.ID = 12345
	err := s.UpdateBook(context.Background(), book)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("A Study of Tides", "J. P. Hestvik")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("create book: %v", err)
	}

	if err := s.DeleteBook(ctx, book.ID); err != nil {
		t.Fatalf("delete book: %v", err)
	}

	if _, err := s.GetBook(ctx, book.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.DeleteBook(ctx, book.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSetBookFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestBook("Nightfall in Prague", "Tomas Reiner")
	book.Description = "must survive the favorite toggle"
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("create book: %v", err)
	}

	if err := s.SetBookFavorite(ctx, book.ID, true); err != nil {
		t.Fatalf("set favorite: %v", err)
	}

	got, err := s.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if !got.Favorite {
		t.Error("expected favorite to be set")
	}
	// The rest of the row must be untouched.
	if got.Description != book.Description {
		t.Errorf("description changed by SetBookFavorite: %q", got.Description)
	}
	if got.Rating != book.Rating {
		t.Errorf("rating changed by SetBookFavorite: %d", got.Rating)
	}

	if err := s.SetBookFavorite(ctx, book.ID, false); err != nil {
		t.Fatalf("clear favorite: %v", err)
	}
	got, _ = s.GetBook(ctx, book.ID)
	if got.Favorite {
		t.Error("expected favorite to be cleared")
	}

	if err := s.SetBookFavorite(ctx, 9999, true); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestListBooksShelves(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rated := makeTestBook("Rated", "Author A")
	rated.Rating = 8

	planned := makeTestBook("Planned", "Author B")
	planned.Rating = 0
	planned.Planned = true

	favorite := makeTestBook("Favorite", "Author C")
	favorite.Rating = 10
	favorite.Favorite = true

	for _, b := range []*domain.Book{rated, planned, favorite} {
		if err := s.CreateBook(ctx, b); err != nil {
			t.Fatalf("create book: %v", err)
		}
	}

	all, err := s.ListBooks(ctx)
	if err != nil {
		t.Fatalf("list books: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 books, got %d", len(all))
	}
	// Newest first.
	if all[0].ID != favorite.ID {
		t.Errorf("expected newest book first, got id %d", all[0].ID)
	}

	plannedList, err := s.ListPlannedBooks(ctx)
	if err != nil {
		t.Fatalf("list planned: %v", err)
	}
	if len(plannedList) != 1 || plannedList[0].ID != planned.ID {
		t.Errorf("planned shelf = %v", plannedList)
	}

	ratedList, err := s.ListRatedBooks(ctx)
	if err != nil {
		t.Fatalf("list rated: %v", err)
	}
	if len(ratedList) != 2 {
		t.Errorf("expected 2 rated books, got %d", len(ratedList))
	}

	favList, err := s.ListFavoriteBooks(ctx)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favList) != 1 || favList[0].ID != favorite.ID {
		t.Errorf("favorites shelf = %v", favList)
	}
}

func TestSearchRatedBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hobbit := makeTestBook("The Hobbit", "J.R.R. Tolkien")
	hobbit.Rating = 10

	dune := makeTestBook("Dune", "Frank Herbert")
	dune.Rating = 9

	plannedHobbit := makeTestBook("The Hobbit Companion", "Someone Else")
	plannedHobbit.Rating = 0

	for _, b := range []*domain.Book{hobbit, dune, plannedHobbit} {
		if err := s.CreateBook(ctx, b); err != nil {
			t.Fatalf("create book: %v", err)
		}
	}

	// Case-insensitive title match; planned entries excluded.
	got, err := s.SearchRatedBooks(ctx, "hobbit")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != hobbit.ID {
		t.Errorf("search by title = %v", got)
	}

	// Author match.
	got, err = s.SearchRatedBooks(ctx, "herbert")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != dune.ID {
		t.Errorf("search by author = %v", got)
	}

	// Empty query returns all rated.
	got, err = s.SearchRatedBooks(ctx, "  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("empty query returned %d books, want 2", len(got))
	}

	// Wildcard characters are literal text, not patterns.
	got, err = s.SearchRatedBooks(ctx, "%")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("wildcard query matched %d books, want 0", len(got))
	}
}

func TestSearchRatedBooksUnicode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tolstoy := makeTestBook("Война и мир", "Лев Толстой")
	tolstoy.Rating = 9
	if err := s.CreateBook(ctx, tolstoy); err != nil {
		t.Fatalf("create book: %v", err)
	}

	// Case-insensitive matching must hold beyond ASCII.
	for _, query := range []string{"Война", "война", "ВОЙНА", "Толстой", "толстой", "и мир"} {
		got, err := s.SearchRatedBooks(ctx, query)
		if err != nil {
			t.Fatalf("search %q: %v", query, err)
		}
		if len(got) != 1 || got[0].ID != tolstoy.ID {
			t.Errorf("search %q returned %d books, want 1", query, len(got))
		}
	}

	if got, _ := s.SearchRatedBooks(ctx, "Достоевский"); len(got) != 0 {
		t.Errorf("unrelated query matched %d books, want 0", len(got))
	}
}

func TestCountBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountBooks(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d on empty store", n)
	}

	if err := s.CreateBook(ctx, makeTestBook("One", "A")); err != nil {
		t.Fatalf("create: %v", err)
	}
	n, _ = s.CountBooks(ctx)
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
