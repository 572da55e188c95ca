package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amonks/oshinavi/ics"
	"github.com/amonks/oshinavi/subcmd"
)

func export(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("export", "write every event as an iCalendar file")
	out := subcmd.String("o", "-", "output file, or - for stdout")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	events, err := e.db.ListEvents(ctx)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("error creating '%s': %w", *out, err)
		}
		defer f.Close()
		w = f
	}
	if err := ics.Write(w, "oshinavi", events, time.Now()); err != nil {
		return err
	}
	if *out != "-" {
		fmt.Fprintf(os.Stderr, "wrote %d events to %s\n", len(events), *out)
	}
	return nil
}
