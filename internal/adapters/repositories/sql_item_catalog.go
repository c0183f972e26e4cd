package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL-backed implementation of the ItemCatalog port.
type SQLItemCatalog struct {
	DB *sql.DB
}

func NewSQLItemCatalog(db *sql.DB) *SQLItemCatalog {
	return &SQLItemCatalog{DB: db}
}

// AssetAccount returns the inventory asset account an item posts to,
// or 0 for unknown items.
func (s *SQLItemCatalog) AssetAccount(ctx context.Context, itemID int64) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("item catalog: db is nil")
	}

	q := `
	SELECT asset_account_id
	FROM items
	WHERE item_id = $1;
	`

	var account int64
	err := s.DB.QueryRowContext(ctx, q, itemID).Scan(&account)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("item catalog: query items table: %w", err)
	}

	return account, nil
}
