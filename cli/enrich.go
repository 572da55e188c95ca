package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/oshinavi/setflag"
	"github.com/amonks/oshinavi/subcmd"
	"github.com/amonks/oshinavi/workers"
)

func enrich(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("enrich", "run background workers\nimages fetches artist images from official websites, then exits")
	var (
		names       = setflag.New(workers.Names...)
		batchSize   = subcmd.Int("batch", 10, "artists per batch")
		reportEvery = subcmd.Duration("report-every", 10*time.Minute, "reporter interval")
	)
	subcmd.Var(names, "workers", "workers to run (default 'images'): "+names.Options())
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	list := names.List()
	if len(list) == 0 {
		list = []string{"images"}
	}
	return workers.Run(ctx, e.db, e.log.Named("workers"), list, workers.Options{
		BatchSize:   *batchSize,
		ReportEvery: *reportEvery,
	})
}
