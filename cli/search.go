package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/gemini"
	"github.com/amonks/oshinavi/limiter"
	"github.com/amonks/oshinavi/readthrough"
	"github.com/amonks/oshinavi/subcmd"
)

func search(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("search", "look up an artist with gemini\nrequires GEMINI_API_KEY")
	subcmd.SetArg("query", "string", "artist name (required)", true)
	add := subcmd.Bool("add", false, "add the result to my artists")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	query, err := subcmd.Arg()
	if err != nil {
		return err
	}

	if e.cfg.GeminiAPIKey == "" {
		return fmt.Errorf("must set GEMINI_API_KEY")
	}
	client, err := newSearcher(ctx, e)
	if err != nil {
		return err
	}

	artist, err := client.Search(ctx, query)
	if err != nil {
		return err
	}
	printArtist(artist)

	if !*add {
		return nil
	}
	added, err := e.db.InsertArtist(ctx, artist)
	if err != nil {
		return err
	}
	if added {
		fmt.Printf("\nadded '%s' to my artists\n", artist.Name)
	} else {
		fmt.Printf("\n'%s' is already in my artists\n", artist.Name)
	}
	return nil
}

// newSearcher builds a gemini client whose responses are cached and whose
// requests are spaced out across runs.
func newSearcher(ctx context.Context, e *env) (*gemini.Client, error) {
	if err := os.MkdirAll(e.cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating cache dir '%s': %w", e.cfg.CacheDir, err)
	}
	lim := limiter.New(filepath.Join(e.cfg.CacheDir, "gemini-next-request"), e.cfg.LookupDelay, e.log.Named("limiter"))
	if err := lim.Load(); err != nil {
		return nil, err
	}
	return gemini.New(ctx, gemini.Options{
		APIKey:  e.cfg.GeminiAPIKey,
		Model:   e.cfg.GeminiModel,
		Cache:   readthrough.New(e.cfg.CacheDir, "gemini-", e.cfg.CacheTTL),
		Limiter: lim,
		Logger:  e.log.Named("gemini"),
	})
}

func printArtist(artist *data.Artist) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "name\t%s\n", artist.Name)
	fmt.Fprintf(tw, "genre\t%s\n", artist.Genre)
	fmt.Fprintf(tw, "description\t%s\n", artist.Description)
	if artist.HasWebsite() {
		fmt.Fprintf(tw, "website\t%s\n", artist.OfficialWebsite)
	}
	tw.Flush()
}
