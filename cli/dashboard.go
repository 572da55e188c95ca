package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/oshinavi/calendar"
	"github.com/amonks/oshinavi/subcmd"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func dashboard(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("dashboard", "summarize my artists and the coming week")
	days := subcmd.Int("days", calendar.UpcomingDays, "how many days ahead to show")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	artists, err := e.db.CountArtists(ctx)
	if err != nil {
		return err
	}
	events, err := e.db.ListEvents(ctx)
	if err != nil {
		return err
	}

	humanPrinter.Printf("%d\tartists\n", artists)
	humanPrinter.Printf("%d\tevents\n\n", len(events))

	upcoming := calendar.Upcoming(events, time.Now(), *days)
	humanPrinter.Printf("NEXT %d DAYS\n", *days)
	if len(upcoming) == 0 {
		humanPrinter.Printf("  No events scheduled in the next %d days.\n", *days)
		return nil
	}
	for _, ev := range upcoming {
		day, _ := ev.Day(time.Local)
		humanPrinter.Printf("  %s\t%s (%s - %s)\n", day.Format("Mon Jan 2"), ev.Title, ev.ArtistName, ev.Type)
	}
	return nil
}

var humanPrinter = message.NewPrinter(language.English)
