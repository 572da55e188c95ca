package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/setflag"
	"github.com/amonks/oshinavi/subcmd"
)

func addEvent(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("add-event", "add an event for one of my artists")
	var (
		artist = subcmd.String("artist", "", "artist name (required)")
		title  = subcmd.String("title", "", "event title (required)")
		date   = subcmd.String("date", time.Now().Format(data.DateLayout), "event date, like 2025-05-01")
		typ    = subcmd.String("type", string(data.EventTypeLive), "one of 'Live', 'Release', 'TV Appearance', 'Other'")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	event := &data.Event{
		ArtistName: *artist,
		Title:      *title,
		Date:       *date,
		Type:       data.EventType(*typ),
	}
	if err := e.db.InsertEvent(ctx, event); err != nil {
		return err
	}
	fmt.Println(event.ID)
	return nil
}

func removeEvent(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("remove-event", "remove an event")
	subcmd.SetArg("id", "string", "event id, as printed by 'oshinavi events' (required)", true)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	id, err := subcmd.Arg()
	if err != nil {
		return err
	}
	return e.db.RemoveEvent(ctx, id)
}

func events(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("events", "list events")
	var (
		from  = subcmd.String("from", "", "first date to include, like 2025-05-01")
		to    = subcmd.String("to", "", "last date to include, like 2025-05-31")
		types = setflag.New(eventTypeNames()...)
	)
	subcmd.Var(types, "types", "only show these types: "+types.Options())
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	var (
		events []data.Event
		err    error
	)
	if *from != "" || *to != "" {
		start, end, rerr := dateRange(*from, *to)
		if rerr != nil {
			return rerr
		}
		events, err = e.db.EventsBetween(ctx, start, end)
	} else {
		events, err = e.db.ListEvents(ctx)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "date\ttype\tartist\ttitle\tid\n")
	for _, ev := range events {
		if len(types.List()) > 0 && !types.Has(string(ev.Type)) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ev.Date, ev.Type, ev.ArtistName, ev.Title, ev.ID)
	}
	return tw.Flush()
}

func eventTypeNames() []string {
	names := make([]string, len(data.EventTypes))
	for i, t := range data.EventTypes {
		names[i] = string(t)
	}
	return names
}

// dateRange parses an inclusive range. Either end may be empty, in which
// case the range is open on that side.
func dateRange(from, to string) (time.Time, time.Time, error) {
	start, end := time.Time{}, time.Date(9999, time.December, 31, 0, 0, 0, 0, time.Local)
	if from != "" {
		t, err := time.ParseInLocation(data.DateLayout, from, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("error parsing -from '%s': %w", from, err)
		}
		start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(data.DateLayout, to, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("error parsing -to '%s': %w", to, err)
		}
		end = t
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("-to '%s' is before -from '%s'", to, from)
	}
	return start, end, nil
}
