package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/oshinavi/auth"
	"github.com/amonks/oshinavi/gemini"
	"github.com/amonks/oshinavi/server"
	"github.com/amonks/oshinavi/setflag"
	"github.com/amonks/oshinavi/subcmd"
	"github.com/amonks/oshinavi/workers"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serve(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("serve", "run the dashboard web server")
	var (
		port        = subcmd.Int("port", 8080, "http port")
		searchEvery = subcmd.Duration("search-every", 2*time.Second, "minimum spacing of artist searches")
		reportEvery = subcmd.Duration("report-every", 10*time.Minute, "reporter interval; images are looked for again on each report")
		workerNames = setflag.New(workers.Names...)
	)
	subcmd.Var(workerNames, "workers", "background workers to run alongside the server: "+workerNames.Options())
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	// images alone would stop after its first pass
	if workerNames.Has("images") && !workerNames.Has("reporter") {
		if err := workerNames.Set("reporter"); err != nil {
			return err
		}
	}

	var searcher gemini.Searcher
	if e.cfg.GeminiAPIKey != "" {
		client, err := newSearcher(ctx, e)
		if err != nil {
			return err
		}
		searcher = client
	} else {
		e.log.Warn("no gemini API key; artist search is disabled")
	}

	if e.cfg.AuthEnabled() {
		e.log.Info("changes require basic auth", zap.String("user", e.cfg.AuthUser))
	} else {
		e.log.Warn("basic auth is off; anyone who can reach the server can change data")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, server.Options{
			Addr:        fmt.Sprintf(":%d", *port),
			DB:          e.db,
			Searcher:    searcher,
			Auth:        auth.NewBasic(e.cfg.AuthUser, e.cfg.AuthHash, e.log.Named("auth")),
			Logger:      e.log.Named("server"),
			SearchEvery: *searchEvery,
		})
	})
	if names := workerNames.List(); len(names) > 0 {
		g.Go(func() error {
			if err := workers.Run(ctx, e.db, e.log.Named("workers"), names, workers.Options{ReportEvery: *reportEvery}); err != nil {
				return fmt.Errorf("workers stopped: %w", err)
			}
			e.log.Info("workers finished", zap.Strings("workers", names))
			return nil
		})
	}
	return g.Wait()
}
