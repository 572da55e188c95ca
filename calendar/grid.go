package calendar

import (
	"time"

	"github.com/amonks/oshinavi/data"
)

// Weekdays are the grid's column headings.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// A Day is one cell of a month grid.
type Day struct {
	Date       time.Time
	InMonth    bool
	IsToday    bool
	IsSelected bool
	Events     []data.Event
}

// A Grid is a month laid out in Sunday-first weeks. The first week holds
// the first of the month and the last week holds its last day, so cells
// before and after the month belong to the neighboring months.
type Grid struct {
	Month time.Time
	Weeks [][]Day
}

type Options struct {
	Today    time.Time
	Selected time.Time

	// SixWeeks pads short months with trailing weeks so that every grid
	// has the same height.
	SixWeeks bool
}

// NewGrid lays out the month containing month, placing each event on the
// cell whose date it matches exactly.
func NewGrid(month time.Time, events []data.Event, opts Options) Grid {
	month = Month(month)
	start := weeks.With(month).BeginningOfWeek()
	end := weeks.With(weeks.With(month).EndOfMonth()).EndOfWeek()

	byDate := map[string][]data.Event{}
	for _, ev := range events {
		if _, err := ev.Day(month.Location()); err != nil {
			continue
		}
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}

	grid := Grid{Month: month}
	day := start
	for !day.After(end) || (opts.SixWeeks && len(grid.Weeks) < 6) {
		week := make([]Day, 7)
		for i := range week {
			week[i] = Day{
				Date:       day,
				InMonth:    day.Month() == month.Month() && day.Year() == month.Year(),
				IsToday:    !opts.Today.IsZero() && SameDay(day, opts.Today),
				IsSelected: !opts.Selected.IsZero() && SameDay(day, opts.Selected),
				Events:     byDate[day.Format(data.DateLayout)],
			}
			day = day.AddDate(0, 0, 1)
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// Days returns every cell in order.
func (g Grid) Days() []Day {
	var days []Day
	for _, week := range g.Weeks {
		days = append(days, week...)
	}
	return days
}

func (g Grid) Title() string {
	return g.Month.Format("January 2006")
}
