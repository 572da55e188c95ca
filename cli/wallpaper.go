package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/subcmd"
)

func wallpaper(ctx context.Context, e *env, args []string) error {
	subcmd := subcmd.New("wallpaper", "print the dashboard wallpaper, or set it")
	subcmd.SetArg("url", "string", "new wallpaper image url", false)
	reset := subcmd.Bool("reset", false, "restore the default wallpaper")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	value, err := subcmd.Arg()
	if err != nil {
		return err
	}

	switch {
	case *reset:
		return e.db.SetWallpaper(ctx, data.DefaultWallpaperURL)

	case value != "":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("'%s' is not an http(s) url", value)
		}
		return e.db.SetWallpaper(ctx, value)

	default:
		current, err := e.db.Wallpaper(ctx)
		if err != nil {
			return err
		}
		fmt.Println(current)
		return nil
	}
}
