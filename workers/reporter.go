package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/oshinavi/calendar"
	"github.com/amonks/oshinavi/db"
	"go.uber.org/zap"
)

// Report is a snapshot of what the dashboard shows.
type Report struct {
	Artists  int
	Events   int
	Upcoming int
}

func gatherInfo(ctx context.Context, db *db.DB, now time.Time) (Report, error) {
	var report Report
	var err error
	if report.Artists, err = db.CountArtists(ctx); err != nil {
		return report, err
	}
	if report.Events, err = db.CountEvents(ctx); err != nil {
		return report, err
	}
	start := calendar.StartOfDay(now)
	upcoming, err := db.EventsBetween(ctx, start, start.AddDate(0, 0, calendar.UpcomingDays))
	if err != nil {
		return report, err
	}
	report.Upcoming = len(upcoming)
	return report, nil
}

func runReporter(ctx context.Context, c chan<- struct{}, db *db.DB, every time.Duration, now func() time.Time, log *zap.Logger) error {
	tick := time.NewTicker(every)
	defer tick.Stop()

	for {
		report, err := gatherInfo(ctx, db, now())
		if err != nil {
			return fmt.Errorf("reporting error: %w", err)
		}
		log.Info("report",
			zap.Int("artists", report.Artists),
			zap.Int("events", report.Events),
			zap.Int("upcoming", report.Upcoming))
		c <- struct{}{}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
