// Package calendar does the date arithmetic behind the dashboard and the
// month view: week-aligned month grids, same-day matching, and the rolling
// upcoming-events window.
package calendar

import (
	"sort"
	"time"

	"github.com/amonks/oshinavi/data"
	"github.com/jinzhu/now"
)

// MonthLayout is the query-string format of a month, like "2025-05".
const MonthLayout = "2006-01"

// UpcomingDays is the width of the dashboard's window.
const UpcomingDays = 7

var weeks = &now.Config{WeekStartDay: time.Sunday}

// Month returns midnight on the first day of t's month.
func Month(t time.Time) time.Time {
	return weeks.With(t).BeginningOfMonth()
}

func NextMonth(t time.Time) time.Time { return Month(t).AddDate(0, 1, 0) }
func PrevMonth(t time.Time) time.Time { return Month(t).AddDate(0, -1, 0) }

// StartOfDay returns midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	return weeks.With(t).BeginningOfDay()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// EventsOn returns the events dated on day, in their original order. Events
// with unparseable dates never match.
func EventsOn(events []data.Event, day time.Time) []data.Event {
	var out []data.Event
	for _, ev := range events {
		d, err := ev.Day(day.Location())
		if err != nil {
			continue
		}
		if SameDay(d, day) {
			out = append(out, ev)
		}
	}
	return out
}

// Upcoming returns the events dated from today through today+days,
// inclusive at both ends, sorted by date.
func Upcoming(events []data.Event, t time.Time, days int) []data.Event {
	start := StartOfDay(t)
	end := start.AddDate(0, 0, days)

	type dated struct {
		ev  data.Event
		day time.Time
	}
	var within []dated
	for _, ev := range events {
		d, err := ev.Day(t.Location())
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		within = append(within, dated{ev, d})
	}

	sort.SliceStable(within, func(i, j int) bool {
		if !within[i].day.Equal(within[j].day) {
			return within[i].day.Before(within[j].day)
		}
		return within[i].ev.Title < within[j].ev.Title
	})

	out := make([]data.Event, len(within))
	for i, d := range within {
		out[i] = d.ev
	}
	return out
}

// ParseMonth parses "2025-05" in loc. The empty string is the month
// containing fallback.
func ParseMonth(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return Month(fallback), nil
	}
	t, err := time.ParseInLocation(MonthLayout, s, fallback.Location())
	if err != nil {
		return time.Time{}, err
	}
	return Month(t), nil
}

// ParseDay parses "2025-05-01" in loc. The empty string is fallback's day.
func ParseDay(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return StartOfDay(fallback), nil
	}
	return time.ParseInLocation(data.DateLayout, s, fallback.Location())
}
