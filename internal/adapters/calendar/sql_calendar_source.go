package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shipdate-policy-service/internal/platform/obs"
)

// SQL-backed implementation of the CalendarSource port. Calendars live
// in one table keyed by calendar id, one row per blackout date.
type SQLCalendarSource struct {
	DB *sql.DB
}

func NewSQLCalendarSource(db *sql.DB) *SQLCalendarSource {
	return &SQLCalendarSource{DB: db}
}

// PageCount reports how many pages of the given size the calendar
// occupies.
func (s *SQLCalendarSource) PageCount(
	ctx context.Context,
	calendarID string,
	pageSize int,
) (_ int, err error) {
	defer obs.Time(ctx, "calendar.PageCount")(&err)

	if s.DB == nil {
		return 0, errors.New("calendar source: db is nil")
	}
	if pageSize <= 0 {
		return 0, fmt.Errorf("calendar source: invalid page size %d", pageSize)
	}

	q := `
	SELECT COUNT(*)
	FROM blackout_dates
	WHERE calendar_id = $1;
	`

	var total int
	if err := s.DB.QueryRowContext(ctx, q, calendarID).Scan(&total); err != nil {
		return 0, fmt.Errorf("calendar page count: query blackout_dates table: %w", err)
	}

	return (total + pageSize - 1) / pageSize, nil
}

// FetchPage returns one zero-based page of blackout dates in date
// order.
func (s *SQLCalendarSource) FetchPage(
	ctx context.Context,
	calendarID string,
	page int,
	pageSize int,
) (_ []time.Time, err error) {
	defer obs.Time(ctx, "calendar.FetchPage")(&err)

	if s.DB == nil {
		return nil, errors.New("calendar source: db is nil")
	}
	if page < 0 || pageSize <= 0 {
		return nil, fmt.Errorf("calendar source: invalid page %d size %d", page, pageSize)
	}

	q := `
	SELECT delivery_date
	FROM blackout_dates
	WHERE calendar_id = $1
	ORDER BY delivery_date
	LIMIT $2 OFFSET $3;
	`

	rows, err := s.DB.QueryContext(ctx, q, calendarID, pageSize, page*pageSize)
	if err != nil {
		return nil, fmt.Errorf("calendar fetch page: query blackout_dates table: %w", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0, pageSize)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("calendar fetch page: scan row: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calendar fetch page: row iteration: %w", err)
	}

	return dates, nil
}
