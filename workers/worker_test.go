package workers

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/db"
	"github.com/amonks/oshinavi/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func drain(c chan struct{}) (count func() int, stop func()) {
	var n atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range c {
			n.Add(1)
		}
	}()
	return func() int { return int(n.Load()) }, func() { close(c); <-done }
}

func TestEngineRetriggers(t *testing.T) {
	eng := NewEngine(zap.NewNop())

	var bRuns atomic.Int64
	release := make(chan struct{})
	eng.Add("a", func(ctx context.Context, c chan<- struct{}) error {
		<-release
		c <- struct{}{}
		return nil
	})
	eng.Add("b", func(ctx context.Context, c chan<- struct{}) error {
		bRuns.Add(1)
		return nil
	})
	eng.Trigger("a", "b")

	go func() {
		// let b's first run finish before a reports its batch
		for bRuns.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()

	require.NoError(t, eng.Start(context.Background()))
	assert.Equal(t, int64(2), bRuns.Load())
}

func TestEngineStopsOnError(t *testing.T) {
	eng := NewEngine(zap.NewNop())
	boom := errors.New("boom")

	eng.Add("fails", func(ctx context.Context, c chan<- struct{}) error {
		return boom
	})
	eng.Add("waits", func(ctx context.Context, c chan<- struct{}) error {
		<-ctx.Done()
		return nil
	})

	err := eng.Start(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestEngineCanceled(t *testing.T) {
	eng := NewEngine(zap.NewNop())
	eng.Add("waits", func(ctx context.Context, c chan<- struct{}) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)
	assert.ErrorIs(t, eng.Start(ctx), context.Canceled)
}

func TestRunRejectsUnknownWorkers(t *testing.T) {
	d := openDB(t)
	err := Run(context.Background(), d, zap.NewNop(), []string{"thumbnails"}, Options{})
	assert.ErrorContains(t, err, "unsupported worker 'thumbnails'")
}

func TestImageFetcher(t *testing.T) {
	ctx := context.Background()
	d := openDB(t)

	for _, artist := range []data.Artist{
		{Name: "Ado", OfficialWebsite: "https://ado.example"},
		{Name: "Aimer", OfficialWebsite: "https://aimer.example"},
		{Name: "Broken", OfficialWebsite: "https://broken.example"},
		{Name: "Plain", OfficialWebsite: "https://plain.example"},
		{Name: "Nowhere"},
	} {
		_, err := d.InsertArtist(ctx, &artist)
		require.NoError(t, err)
	}

	var fetched []string
	fetch := func(ctx context.Context, url string) (*site.Preview, error) {
		fetched = append(fetched, url)
		switch url {
		case "https://broken.example":
			return nil, errors.New("connection refused")
		case "https://plain.example":
			return &site.Preview{Title: "Plain", Description: "A plain site."}, nil
		default:
			return &site.Preview{ImageURL: url + "/og.jpg"}, nil
		}
	}

	c := make(chan struct{})
	count, stop := drain(c)
	require.NoError(t, runImageFetcher(ctx, c, d, fetch, 2, zap.NewNop()))
	stop()

	assert.Len(t, fetched, 4)
	assert.Equal(t, 2, count())

	ado, err := d.GetArtist(ctx, "Ado")
	require.NoError(t, err)
	assert.Equal(t, "https://ado.example/og.jpg", ado.ImageURL)

	broken, err := d.GetArtist(ctx, "Broken")
	require.NoError(t, err)
	assert.Empty(t, broken.ImageURL)

	plain, err := d.GetArtist(ctx, "Plain")
	require.NoError(t, err)
	assert.Empty(t, plain.ImageURL)
	assert.Equal(t, "A plain site.", plain.Description)
}

func TestImagesRunAgainOnReport(t *testing.T) {
	d := openDB(t)

	orig := fetchPreview
	fetchPreview = func(ctx context.Context, url string) (*site.Preview, error) {
		return &site.Preview{ImageURL: url + "/og.jpg"}, nil
	}
	t.Cleanup(func() { fetchPreview = orig })

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- Run(ctx, d, zap.NewNop(), []string{"images", "reporter"}, Options{ReportEvery: 10 * time.Millisecond})
	}()

	// the first images pass finds nothing and returns
	time.Sleep(30 * time.Millisecond)
	_, err := d.InsertArtist(context.Background(), &data.Artist{Name: "Ado", OfficialWebsite: "https://ado.example"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		ado, err := d.GetArtist(context.Background(), "Ado")
		return err == nil && ado.ImageURL == "https://ado.example/og.jpg"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)
}

func TestReporter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := openDB(t)

	_, err := d.InsertArtist(ctx, &data.Artist{Name: "Ado"})
	require.NoError(t, err)
	today := time.Now()
	require.NoError(t, d.InsertEvent(ctx, &data.Event{ArtistName: "Ado", Title: "Tour", Date: today.Format(data.DateLayout)}))
	require.NoError(t, d.InsertEvent(ctx, &data.Event{ArtistName: "Ado", Title: "Old", Date: "2001-01-01"}))

	report, err := gatherInfo(ctx, d, today)
	require.NoError(t, err)
	assert.Equal(t, Report{Artists: 1, Events: 2, Upcoming: 1}, report)

	c := make(chan struct{})
	reported := make(chan struct{})
	go func() {
		<-c
		close(reported)
		for range c {
		}
	}()
	errs := make(chan error)
	go func() { errs <- runReporter(ctx, c, d, time.Hour, time.Now, zap.NewNop()) }()

	<-reported
	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)
	close(c)
}
