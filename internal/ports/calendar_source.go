package ports

import (
	"context"
	"time"
)

// CalendarPageSize is the fixed page size used when loading blackout
// calendars from their backing source.
const CalendarPageSize = 1000

// Port: a boundary for loading blackout calendar dates from a backing
// query source. Sources expose total page count and per-page fetches so
// callers can collect the full date set.
type CalendarSource interface {
	// Number of pages the calendar occupies at the given page size.
	PageCount(ctx context.Context, calendarID string, pageSize int) (int, error)
	// Dates on one zero-based page.
	FetchPage(ctx context.Context, calendarID string, page int, pageSize int) ([]time.Time, error)
}
