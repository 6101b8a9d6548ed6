package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns diary entries, optionally filtered by shelf or search query",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a diary entry by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Create book",
		Description: "Creates a new diary entry",
		Tags:        []string{"Books"},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Replaces an existing diary entry",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a diary entry",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "setBookFavorite",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}/favorite",
		Summary:     "Set favorite",
		Description: "Sets or clears the favorite flag on a diary entry",
		Tags:        []string{"Books"},
	}, s.handleSetBookFavorite)
}

// === DTOs ===

type BookResponse struct {
	ID          int64     `json:"id" doc:"Book ID"`
	Title       string    `json:"title" doc:"Book title"`
	Author      string    `json:"author" doc:"Author name"`
	Description string    `json:"description,omitempty" doc:"Reading notes"`
	Date        time.Time `json:"date" doc:"Read or planned date"`
	Rating      int       `json:"rating" doc:"Rating 1-10, 0 when unrated"`
	GenreID     string    `json:"genre_id" doc:"Genre remote ID"`
	GenreLabel  string    `json:"genre_label" doc:"Genre display label"`
	ImageID     string    `json:"image_id,omitempty" doc:"Cover image ID"`
	BlurHash    string    `json:"blur_hash,omitempty" doc:"Cover placeholder hash"`
	Planned     bool      `json:"planned" doc:"True for planned reading"`
	Favorite    bool      `json:"favorite" doc:"Favorite flag"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

type ListBooksInput struct {
	Filter string `query:"filter" enum:"all,planned,rated,favorites" default:"all" doc:"Shelf filter"`
	Query  string `query:"q" doc:"Search rated entries by title or author"`
}

type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"List of diary entries"`
}

type ListBooksOutput struct {
	Body ListBooksResponse
}

type GetBookInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

type BookOutput struct {
	Body BookResponse
}

type BookRequest struct {
	Title       string    `json:"title" doc:"Book title"`
	Author      string    `json:"author" doc:"Author name"`
	Description string    `json:"description,omitempty" doc:"Reading notes"`
	Date        time.Time `json:"date" doc:"Read or planned date"`
	Rating      int       `json:"rating" minimum:"0" maximum:"10" doc:"Rating 1-10, 0 when unrated"`
	GenreID     string    `json:"genre_id" doc:"Genre remote ID"`
	Favorite    bool      `json:"favorite" doc:"Favorite flag"`
}

type CreateBookInput struct {
	Body BookRequest
}

type UpdateBookInput struct {
	ID   int64 `path:"id" doc:"Book ID"`
	Body BookRequest
}

type DeleteBookInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

type SetFavoriteRequest struct {
	Favorite bool `json:"favorite" doc:"New favorite state"`
}

type SetFavoriteInput struct {
	ID   int64 `path:"id" doc:"Book ID"`
	Body SetFavoriteRequest
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	var (
		books []*service.BookWithGenre
		err   error
	)

	switch {
	case input.Query != "":
		books, err = s.services.Book.SearchRatedBooks(ctx, input.Query)
	case input.Filter == "planned":
		books, err = s.services.Book.ListPlannedBooks(ctx)
	case input.Filter == "rated":
		books, err = s.services.Book.ListRatedBooks(ctx)
	case input.Filter == "favorites":
		books, err = s.services.Book.ListFavoriteBooks(ctx)
	default:
		books, err = s.services.Book.ListBooks(ctx)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = mapBookResponse(b)
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: resp}}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book := bookFromRequest(&input.Body)
	if err := s.services.Book.SaveBook(ctx, book); err != nil {
		return nil, err
	}
	return s.handleGetBook(ctx, &GetBookInput{ID: book.ID})
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	// Carry the existing cover and timestamps through the replace.
	existing, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	book := bookFromRequest(&input.Body)
	book.ID = input.ID
	book.ImageID = existing.ImageID
	book.BlurHash = existing.BlurHash
	book.CreatedAt = existing.CreatedAt

	if err := s.services.Book.SaveBook(ctx, book); err != nil {
		return nil, err
	}
	return s.handleGetBook(ctx, &GetBookInput{ID: input.ID})
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	if err := s.services.Book.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}

func (s *Server) handleSetBookFavorite(ctx context.Context, input *SetFavoriteInput) (*BookOutput, error) {
	if err := s.services.Book.SetFavorite(ctx, input.ID, input.Body.Favorite); err != nil {
		return nil, err
	}
	return s.handleGetBook(ctx, &GetBookInput{ID: input.ID})
}

// === Mappers ===

func bookFromRequest(req *BookRequest) *domain.Book {
	return &domain.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Date:        req.Date,
		Rating:      req.Rating,
		GenreID:     req.GenreID,
		Favorite:    req.Favorite,
	}
}

func mapBookResponse(b *service.BookWithGenre) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Date:        b.Date,
		Rating:      b.Rating,
		GenreID:     b.GenreID,
		GenreLabel:  b.GenreLabel,
		ImageID:     b.ImageID,
		BlurHash:    b.BlurHash,
		Planned:     b.Planned,
		Favorite:    b.Favorite,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
