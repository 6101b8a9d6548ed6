package sqlite

import (
	"context"
	"database/sql"
)

// GetPreference returns the stored value for key, or "" when the key is unset.
func (s *Store) GetPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetPreference durably stores value under key, replacing any previous value.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO preferences (key, value)
		VALUES (?, ?)`,
		key, value)
	return err
}
