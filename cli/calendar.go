package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/amonks/oshinavi/calendar"
	"github.com/amonks/oshinavi/subcmd"
)

func showCalendar(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("calendar", "print a month of events")
	var (
		month = subcmd.String("month", "", "month to show, like 2025-05 (default this month)")
		day   = subcmd.String("day", "", "day to highlight, like 2025-05-01")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	today := time.Now()
	m, err := calendar.ParseMonth(*month, today)
	if err != nil {
		return fmt.Errorf("error parsing -month '%s': %w", *month, err)
	}
	var selected time.Time
	if *day != "" {
		if selected, err = calendar.ParseDay(*day, today); err != nil {
			return fmt.Errorf("error parsing -day '%s': %w", *day, err)
		}
	}

	events, err := e.db.ListEvents(ctx)
	if err != nil {
		return err
	}

	grid := calendar.NewGrid(m, events, calendar.Options{Today: today, Selected: selected})
	return calendar.Render(os.Stdout, grid)
}
