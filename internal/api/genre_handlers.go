package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
)

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Returns the mirrored genre catalog ordered by label",
		Tags:        []string{"Genres"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGenre",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres/{id}",
		Summary:     "Get genre",
		Description: "Returns a mirrored genre by its remote ID",
		Tags:        []string{"Genres"},
	}, s.handleGetGenre)

	huma.Register(s.api, huma.Operation{
		OperationID: "syncGenres",
		Method:      http.MethodPost,
		Path:        "/api/v1/genres/sync",
		Summary:     "Sync genres",
		Description: "Reconciles the local mirror against the remote catalog",
		Tags:        []string{"Genres"},
	}, s.handleSyncGenres)
}

// === DTOs ===

type GenreResponse struct {
	ID    string `json:"id" doc:"Remote genre ID"`
	Label string `json:"label" doc:"Display label"`
}

type ListGenresResponse struct {
	Genres []GenreResponse `json:"genres" doc:"List of genres"`
}

type ListGenresOutput struct {
	Body ListGenresResponse
}

type GetGenreInput struct {
	ID string `path:"id" doc:"Remote genre ID"`
}

type GenreOutput struct {
	Body GenreResponse
}

type SyncGenresResponse struct {
	Skipped bool `json:"skipped" doc:"True when the rate limit suppressed the fetch"`
	Added   int  `json:"added" doc:"Genres added to the mirror"`
	Removed int  `json:"removed" doc:"Genres removed from the mirror"`
}

type SyncGenresOutput struct {
	Body SyncGenresResponse
}

// === Handlers ===

func (s *Server) handleListGenres(ctx context.Context, _ *struct{}) (*ListGenresOutput, error) {
	genres, err := s.services.Genre.ListGenres(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]GenreResponse, len(genres))
	for i, g := range genres {
		resp[i] = mapGenreResponse(g)
	}

	return &ListGenresOutput{Body: ListGenresResponse{Genres: resp}}, nil
}

func (s *Server) handleGetGenre(ctx context.Context, input *GetGenreInput) (*GenreOutput, error) {
	g, err := s.services.Genre.GetGenre(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GenreOutput{Body: mapGenreResponse(g)}, nil
}

func (s *Server) handleSyncGenres(ctx context.Context, _ *struct{}) (*SyncGenresOutput, error) {
	result, err := s.services.Genre.Sync(ctx)
	if err != nil {
		return nil, err
	}
	return &SyncGenresOutput{Body: SyncGenresResponse{
		Skipped: result.Skipped,
		Added:   result.Added,
		Removed: result.Removed,
	}}, nil
}

// === Mappers ===

func mapGenreResponse(g *domain.Genre) GenreResponse {
	return GenreResponse{
		ID:    g.RemoteID,
		Label: g.Label,
	}
}
