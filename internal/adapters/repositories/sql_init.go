package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBlackoutDatesQuery := `
	CREATE TABLE IF NOT EXISTS blackout_dates (
		calendar_id TEXT NOT NULL,
		delivery_date DATE NOT NULL,
		PRIMARY KEY (calendar_id, delivery_date)
	);
	`

	createConfigQuery := `
	CREATE TABLE IF NOT EXISTS app_config (
		distance_api_key TEXT
	);
	`

	createItemsQuery := `
	CREATE TABLE IF NOT EXISTS items (
		item_id BIGINT PRIMARY KEY,
		item_name TEXT NOT NULL,
		asset_account_id BIGINT NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		miles DOUBLE PRECISION NOT NULL,
		resolved_address TEXT NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_blackout_dates_calendar
	ON blackout_dates(calendar_id, delivery_date);
	`

	statements := []string{
		createBlackoutDatesQuery,
		createConfigQuery,
		createItemsQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type seedFile struct {
	APIKey    string `json:"api_key"`
	Calendars []struct {
		ID    string   `json:"id"`
		Dates []string `json:"dates"`
	} `json:"calendars"`
	Items []struct {
		ItemID         int64  `json:"item_id"`
		ItemName       string `json:"item_name"`
		AssetAccountID int64  `json:"asset_account_id"`
	} `json:"items"`
}

// SeedFromJSON loads blackout calendars, the API-key config row, and
// the item catalog from a JSON seed file. Dates use the YYYY-MM-DD
// form. Existing rows are upserted so seeding is re-runnable.
func SeedFromJSON(db *sql.DB, path string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed: parse %q: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, cal := range seed.Calendars {
		if cal.ID == "" {
			return errors.New("seed: calendar with empty id")
		}
		for _, d := range cal.Dates {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return fmt.Errorf("seed: calendar %q: bad date %q: %w", cal.ID, d, err)
			}
			_, err := tx.Exec(`
				INSERT INTO blackout_dates (calendar_id, delivery_date)
				VALUES ($1, $2)
				ON CONFLICT (calendar_id, delivery_date) DO NOTHING;`,
				cal.ID, d,
			)
			if err != nil {
				return fmt.Errorf("seed: insert blackout date %q/%q: %w", cal.ID, d, err)
			}
		}
	}

	if seed.APIKey != "" {
		if _, err := tx.Exec(`DELETE FROM app_config;`); err != nil {
			return fmt.Errorf("seed: clear app_config: %w", err)
		}
		if _, err := tx.Exec(`INSERT INTO app_config (distance_api_key) VALUES ($1);`, seed.APIKey); err != nil {
			return fmt.Errorf("seed: insert app_config: %w", err)
		}
	}

	for _, item := range seed.Items {
		_, err := tx.Exec(`
			INSERT INTO items (item_id, item_name, asset_account_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (item_id) DO UPDATE
			SET item_name = EXCLUDED.item_name,
				asset_account_id = EXCLUDED.asset_account_id;`,
			item.ItemID, item.ItemName, item.AssetAccountID,
		)
		if err != nil {
			return fmt.Errorf("seed: insert item %d: %w", item.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
