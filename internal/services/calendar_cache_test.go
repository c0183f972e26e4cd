package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// stubCalendarSource serves fixed date sets and counts fetches so tests
// can assert memoization.
type stubCalendarSource struct {
	dates      map[string][]time.Time
	err        error
	pageCalls  int
	fetchCalls int
}

func (s *stubCalendarSource) PageCount(ctx context.Context, calendarID string, pageSize int) (int, error) {
	s.pageCalls++
	if s.err != nil {
		return 0, s.err
	}
	if len(s.dates[calendarID]) == 0 {
		return 0, nil
	}
	return (len(s.dates[calendarID]) + pageSize - 1) / pageSize, nil
}

func (s *stubCalendarSource) FetchPage(ctx context.Context, calendarID string, page, pageSize int) ([]time.Time, error) {
	s.fetchCalls++
	if s.err != nil {
		return nil, s.err
	}
	all := s.dates[calendarID]
	start := page * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendarCacheMemoizes(t *testing.T) {
	src := &stubCalendarSource{dates: map[string][]time.Time{
		"blackout-default": {date(2026, 11, 26), date(2026, 12, 25)},
	}}
	cache := NewCalendarCache(src, zap.NewNop())

	cal := cache.Get(context.Background(), "blackout-default")
	if cal.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cal.Len())
	}
	if !cal.Contains(date(2026, 11, 26)) {
		t.Fatal("expected 2026-11-26 to be a blackout date")
	}

	again := cache.Get(context.Background(), "blackout-default")
	if again.Len() != 2 {
		t.Fatalf("second Get Len() = %d, want 2", again.Len())
	}
	if src.pageCalls != 1 {
		t.Fatalf("PageCount called %d times, want 1", src.pageCalls)
	}
	if src.fetchCalls != 1 {
		t.Fatalf("FetchPage called %d times, want 1", src.fetchCalls)
	}
}

func TestCalendarCacheLoadFailureMemoizesEmpty(t *testing.T) {
	src := &stubCalendarSource{err: errors.New("connection refused")}
	cache := NewCalendarCache(src, zap.NewNop())

	cal := cache.Get(context.Background(), "blackout-default")
	if cal.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after a failed load", cal.Len())
	}

	// The failure is memoized too: no retry on the next Get.
	cache.Get(context.Background(), "blackout-default")
	if src.pageCalls != 1 {
		t.Fatalf("PageCount called %d times, want 1", src.pageCalls)
	}
}

func TestCalendarCacheSeparateCalendars(t *testing.T) {
	src := &stubCalendarSource{dates: map[string][]time.Time{
		"blackout-default": {date(2026, 12, 25)},
		"blackout-special": {date(2026, 9, 14)},
	}}
	cache := NewCalendarCache(src, zap.NewNop())

	def := cache.Get(context.Background(), "blackout-default")
	alt := cache.Get(context.Background(), "blackout-special")

	if def.Contains(date(2026, 9, 14)) {
		t.Fatal("default calendar must not see the special calendar's dates")
	}
	if !alt.Contains(date(2026, 9, 14)) {
		t.Fatal("special calendar missing its own date")
	}
}
