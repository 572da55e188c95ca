package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amonks/oshinavi/subcmd"
)

func artists(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("artists", "list my artists, or stop following one\nremoving an artist also removes their events")
	remove := subcmd.String("remove", "", "name of an artist to remove")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if *remove != "" {
		if err := e.db.RemoveArtist(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("removed '%s'\n", *remove)
		return nil
	}

	artists, err := e.db.ListArtists(ctx)
	if err != nil {
		return err
	}
	if len(artists) == 0 {
		fmt.Println("no artists yet; add one with 'oshinavi search -add <name>'")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"name", "genre", "website", "added"}, "\t"))
	for _, artist := range artists {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			artist.Name,
			artist.Genre,
			artist.OfficialWebsite,
			artist.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
