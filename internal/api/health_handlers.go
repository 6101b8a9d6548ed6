package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

type HealthResponse struct {
	Status string `json:"status" doc:"Server status"`
	Books  int64  `json:"books" doc:"Number of diary entries"`
	Genres int64  `json:"genres" doc:"Number of mirrored genres"`
}

type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	books, err := s.store.CountBooks(ctx)
	if err != nil {
		return nil, err
	}
	genres, err := s.store.CountGenres(ctx)
	if err != nil {
		return nil, err
	}

	return &HealthOutput{Body: HealthResponse{
		Status: "healthy",
		Books:  books,
		Genres: genres,
	}}, nil
}
