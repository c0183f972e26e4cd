package domain

import "time"

// DateKey reduces a timestamp to its civil date. Blackout membership is
// a date-identity check; the time component never participates.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// BlackoutCalendar is an immutable set of civil dates on which shipment
// is disallowed for the associated population of orders. A calendar is
// loaded once per editing session and treated as authoritative until
// the session ends.
type BlackoutCalendar struct {
	id    string
	dates map[string]struct{}
}

func NewBlackoutCalendar(id string, dates []time.Time) BlackoutCalendar {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[DateKey(d)] = struct{}{}
	}
	return BlackoutCalendar{id: id, dates: set}
}

func (c BlackoutCalendar) ID() string { return c.id }

func (c BlackoutCalendar) Len() int { return len(c.dates) }

// Contains reports whether the candidate date is a blackout date.
func (c BlackoutCalendar) Contains(t time.Time) bool {
	_, ok := c.dates[DateKey(t)]
	return ok
}
