// oshinavi tracks favorite artists and their events in a sqlite3 database
// file, and serves a dashboard and calendar for them.
//
// see db/schema.sql for info about the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/oshinavi/config"
	"github.com/amonks/oshinavi/db"
	"github.com/amonks/oshinavi/logging"
	"github.com/amonks/oshinavi/sigctx"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: oshinavi $cmd
valid $cmd are 'serve', 'search', 'artists', 'add-event', 'remove-event',
  'events', 'calendar', 'dashboard', 'wallpaper', 'export', 'enrich',
  'hash-password'
for help: oshinavi $cmd -help
`)

// env holds what every command that touches the database needs.
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *db.DB
}

func run() error {
	ctx := sigctx.New()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	if cmd == "hash-password" {
		return hashPassword(args)
	}

	cfg, err := config.Load(getEnv("OSHINAVI_CONFIG", "oshinavi.yaml"))
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{Verbose: cfg.Verbose, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	e := &env{cfg: cfg, log: log, db: db}

	switch cmd {
	case "serve":
		return serve(ctx, e, args)

	case "search":
		return search(ctx, e, args)

	case "artists":
		return artists(ctx, e, args)

	case "add-event":
		return addEvent(ctx, e, args)

	case "remove-event":
		return removeEvent(ctx, e, args)

	case "events":
		return events(ctx, e, args)

	case "calendar":
		return showCalendar(ctx, e, args)

	case "dashboard":
		return dashboard(ctx, e, args)

	case "wallpaper":
		return wallpaper(ctx, e, args)

	case "export":
		return export(ctx, e, args)

	case "enrich":
		return enrich(ctx, e, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
