package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/errors"
	"github.com/ElenaBalahnina123/BookDiary/internal/genresync"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// GenreService exposes the genre mirror and the sync trigger.
type GenreService struct {
	store  store.Store
	engine *genresync.Engine
	logger *slog.Logger
}

// NewGenreService creates a new genre service.
func NewGenreService(st store.Store, engine *genresync.Engine, logger *slog.Logger) *GenreService {
	return &GenreService{
		store:  st,
		engine: engine,
		logger: logger,
	}
}

// ListGenres returns the mirrored catalog ordered by label.
func (s *GenreService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// GetGenre returns one mirrored genre by its remote id.
func (s *GenreService) GetGenre(ctx context.Context, remoteID string) (*domain.Genre, error) {
	genre, err := s.store.GetGenre(ctx, remoteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("genre %s not found", remoteID)
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return genre, nil
}

// Sync runs one reconciliation against the remote catalog. The engine
// enforces its own rate limit, so callers may invoke this freely.
func (s *GenreService) Sync(ctx context.Context) (genresync.Result, error) {
	return s.engine.Reconcile(ctx)
}
