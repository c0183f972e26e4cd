package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/platform/obs"
)

// SQLDistanceCache is a SQL-backed cache for origin->destination
// resolution results. Only fully resolved results are stored.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch a cached resolution for one origin/destination pair.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ domain.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return domain.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return domain.DistanceResult{}, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	q := `
	SELECT miles, resolved_address
	FROM distance_cache
	WHERE origin = $1 AND destination = $2;
	`

	var (
		miles    float64
		resolved string
	)
	err = s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&miles, &resolved)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DistanceResult{}, false, nil
	}
	if err != nil {
		return domain.DistanceResult{}, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return domain.ResolvedMiles(miles, resolved), true, nil
}

// Store a resolution result for one origin/destination pair.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	result domain.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	if !result.Resolved() {
		return errors.New("insert distance cache: refusing to store unresolved result")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert distance cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO distance_cache (origin, destination, miles, resolved_address)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET miles = EXCLUDED.miles,
		resolved_address = EXCLUDED.resolved_address;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, *result.Miles, result.ResolvedAddress); err != nil {
		return fmt.Errorf("insert distance cache dest=%q: %w", destination, err)
	}

	return nil
}
