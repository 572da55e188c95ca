package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amonks/oshinavi/db"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// A Func does work until there's none left, sending on batches each time it
// finishes a unit of work.
type Func func(ctx context.Context, batches chan<- struct{}) error

type batch struct {
	worker string
	ack    chan struct{}
}

type worker struct {
	f         Func
	isRunning bool
}

// An Engine runs named workers concurrently. When a worker reports a batch,
// the workers it triggers are restarted unless they're already running.
type Engine struct {
	mu       sync.Mutex
	workers  map[string]*worker
	triggers map[string][]string
	log      *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	return &Engine{
		workers:  map[string]*worker{},
		triggers: map[string][]string{},
		log:      log,
	}
}

func (eng *Engine) Add(name string, f Func) {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	eng.workers[name] = &worker{f: f}
}

// Trigger makes each batch from worker `from` restart the workers in `to`.
func (eng *Engine) Trigger(from string, to ...string) {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	eng.triggers[from] = append(eng.triggers[from], to...)
}

// Start runs every worker and blocks until they've all returned. The first
// error cancels the rest and is returned.
func (eng *Engine) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var g errgroup.Group
	events := make(chan batch)
	done := make(chan struct{})

	// run must be called with eng.mu held.
	run := func(name string) {
		w := eng.workers[name]
		w.isRunning = true

		g.Go(func() error {
			batches := make(chan struct{})
			forwarded := make(chan struct{})
			go func() {
				defer close(forwarded)
				for range batches {
					// wait for the retriggers so that they join the group
					// before this worker leaves it
					ack := make(chan struct{})
					select {
					case events <- batch{name, ack}:
						<-ack
					case <-done:
					}
				}
			}()

			eng.log.Info("start", zap.String("worker", name))
			err := w.f(ctx, batches)
			close(batches)
			<-forwarded

			if err != nil {
				eng.log.Error("worker failed", zap.String("worker", name), zap.Error(err))
				cancel(err)
			} else {
				eng.log.Info("done", zap.String("worker", name))
			}

			eng.mu.Lock()
			w.isRunning = false
			eng.mu.Unlock()
			return err
		})
	}

	retrigger := func(name string) {
		eng.mu.Lock()
		defer eng.mu.Unlock()

		w, ok := eng.workers[name]
		if !ok || w.isRunning || ctx.Err() != nil {
			return
		}
		run(name)
	}

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		for {
			select {
			case ev := <-events:
				eng.log.Debug("batch", zap.String("worker", ev.worker))
				eng.mu.Lock()
				targets := eng.triggers[ev.worker]
				eng.mu.Unlock()
				for _, target := range targets {
					retrigger(target)
				}
				close(ev.ack)
			case <-done:
				return
			}
		}
	}()

	func() {
		eng.mu.Lock()
		defer eng.mu.Unlock()

		for name := range eng.workers {
			run(name)
		}
	}()

	err := g.Wait()
	close(done)
	<-dispatched
	return err
}

// Names lists the workers Run knows how to start.
var Names = []string{"images", "reporter"}

type Options struct {
	ReportEvery time.Duration
	BatchSize   int
}

// Run starts the named workers against the database. images returns once
// every artist has been tried, and runs again on each of the reporter's
// ticks, so long-running callers should start both.
func Run(ctx context.Context, db *db.DB, log *zap.Logger, names []string, opts Options) error {
	if opts.ReportEvery == 0 {
		opts.ReportEvery = 10 * time.Minute
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 10
	}

	eng := NewEngine(log)
	for _, name := range names {
		switch name {
		case "images":
			eng.Add("images", func(ctx context.Context, c chan<- struct{}) error {
				return runImageFetcher(ctx, c, db, fetchPreview, opts.BatchSize, log)
			})
		case "reporter":
			eng.Add("reporter", func(ctx context.Context, c chan<- struct{}) error {
				return runReporter(ctx, c, db, opts.ReportEvery, time.Now, log)
			})
		default:
			return fmt.Errorf("unsupported worker '%s'", name)
		}
	}
	eng.Trigger("images", "reporter")
	// each report looks again for artists added since the last image run
	eng.Trigger("reporter", "images")

	return eng.Start(ctx)
}
