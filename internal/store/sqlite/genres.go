package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// ListGenres returns the full genre mirror ordered by label.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT remote_id, label FROM genres ORDER BY label ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []*domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.RemoteID, &g.Label); err != nil {
			return nil, err
		}
		genres = append(genres, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

// GetGenre retrieves a genre by its remote id.
// Returns store.ErrNotFound if the genre does not exist.
func (s *Store) GetGenre(ctx context.Context, remoteID string) (*domain.Genre, error) {
	var g domain.Genre
	err := s.db.QueryRowContext(ctx,
		`SELECT remote_id, label FROM genres WHERE remote_id = ?`, remoteID).
		Scan(&g.RemoteID, &g.Label)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// InsertGenres inserts the given genres in a single transaction.
// Returns store.ErrAlreadyExists if a remote id is already mirrored.
func (s *Store) InsertGenres(ctx context.Context, genres []*domain.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, g := range genres {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO genres (remote_id, label) VALUES (?, ?)`,
			g.RemoteID, g.Label)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return store.ErrAlreadyExists.WithMessage(
					fmt.Sprintf("genre %s already mirrored", g.RemoteID))
			}
			return fmt.Errorf("insert genre %s: %w", g.RemoteID, err)
		}
	}

	return tx.Commit()
}

// DeleteGenres deletes genres by remote id in a single transaction.
// Ids that are not mirrored are ignored.
func (s *Store) DeleteGenres(ctx context.Context, remoteIDs []string) error {
	if len(remoteIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, remoteID := range remoteIDs {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM genres WHERE remote_id = ?`, remoteID); err != nil {
			return fmt.Errorf("delete genre %s: %w", remoteID, err)
		}
	}

	return tx.Commit()
}

// CountGenres returns the size of the genre mirror.
func (s *Store) CountGenres(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(remote_id) FROM genres`).Scan(&n)
	return n, err
}
