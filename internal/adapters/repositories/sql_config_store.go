package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL-backed implementation of the CredentialStore port. The service
// configuration is a single row; a missing row means no credential is
// configured and distance resolution fails closed.
type SQLConfigStore struct {
	DB *sql.DB
}

func NewSQLConfigStore(db *sql.DB) *SQLConfigStore {
	return &SQLConfigStore{DB: db}
}

// APIKey returns the distance service API key, or "" when none is
// configured.
func (s *SQLConfigStore) APIKey(ctx context.Context) (string, error) {
	if s.DB == nil {
		return "", errors.New("config store: db is nil")
	}

	q := `
	SELECT distance_api_key
	FROM app_config
	LIMIT 1;
	`

	var key sql.NullString
	err := s.DB.QueryRowContext(ctx, q).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("config store: query app_config table: %w", err)
	}

	return key.String, nil
}
