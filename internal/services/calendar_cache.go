package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/ports"
)

// CalendarCache lazily loads and memoizes blackout calendars for the
// life of one editing session. A calendar, once loaded, is treated as
// authoritative until the session ends; a failed load memoizes an empty
// calendar so callers see "no known blackout dates" rather than a
// retry loop.
//
// The cache is not safe for concurrent use. Sessions deliver one event
// at a time, so no locking is needed here.
type CalendarCache struct {
	source    ports.CalendarSource
	log       *zap.Logger
	calendars map[string]domain.BlackoutCalendar
}

func NewCalendarCache(source ports.CalendarSource, log *zap.Logger) *CalendarCache {
	return &CalendarCache{
		source:    source,
		log:       log,
		calendars: make(map[string]domain.BlackoutCalendar),
	}
}

// Get returns the calendar for the given id, loading it from the source
// on first use.
func (c *CalendarCache) Get(ctx context.Context, calendarID string) domain.BlackoutCalendar {
	if cal, ok := c.calendars[calendarID]; ok {
		return cal
	}

	cal, err := c.load(ctx, calendarID)
	if err != nil {
		c.log.Error("load blackout calendar",
			zap.String("calendar_id", calendarID),
			zap.Error(err),
		)
		cal = domain.NewBlackoutCalendar(calendarID, nil)
	}

	c.calendars[calendarID] = cal
	return cal
}

// load pages through the full calendar and collects the date set.
func (c *CalendarCache) load(ctx context.Context, calendarID string) (domain.BlackoutCalendar, error) {
	pages, err := c.source.PageCount(ctx, calendarID, ports.CalendarPageSize)
	if err != nil {
		return domain.BlackoutCalendar{}, err
	}

	var dates []time.Time
	for page := 0; page < pages; page++ {
		batch, err := c.source.FetchPage(ctx, calendarID, page, ports.CalendarPageSize)
		if err != nil {
			return domain.BlackoutCalendar{}, err
		}
		dates = append(dates, batch...)
	}

	c.log.Debug("blackout calendar loaded",
		zap.String("calendar_id", calendarID),
		zap.Int("dates", len(dates)),
	)

	return domain.NewBlackoutCalendar(calendarID, dates), nil
}
