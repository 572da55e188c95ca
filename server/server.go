package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/amonks/oshinavi/auth"
	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/db"
	"github.com/amonks/oshinavi/gemini"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templates embed.FS

type Options struct {
	Addr string
	DB   *db.DB

	// Searcher may be nil, in which case the search view says so.
	Searcher gemini.Searcher

	// Auth may be nil, in which case nothing is guarded.
	Auth *auth.Basic

	Logger *zap.Logger

	// Now defaults to time.Now. Its location is the dashboard's timezone.
	Now func() time.Time

	// SearchEvery and SearchBurst throttle artist lookups. The default is
	// one lookup every two seconds with a burst of three.
	SearchEvery time.Duration
	SearchBurst int
}

type Server struct {
	db       *db.DB
	searcher gemini.Searcher
	auth     *auth.Basic
	log      *zap.Logger
	now      func() time.Time
	lookups  *rate.Limiter
	views    map[data.View]*template.Template
}

func New(opts Options) (*Server, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("server requires a db")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Auth == nil {
		opts.Auth = auth.NewBasic("", "", opts.Logger)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SearchEvery == 0 {
		opts.SearchEvery = 2 * time.Second
	}
	if opts.SearchBurst == 0 {
		opts.SearchBurst = 3
	}

	views, err := parseViews()
	if err != nil {
		return nil, err
	}

	return &Server{
		db:       opts.DB,
		searcher: opts.Searcher,
		auth:     opts.Auth,
		log:      opts.Logger,
		now:      opts.Now,
		lookups:  rate.NewLimiter(rate.Every(opts.SearchEvery), opts.SearchBurst),
		views:    views,
	}, nil
}

func parseViews() (map[data.View]*template.Template, error) {
	views := map[data.View]*template.Template{}
	for _, view := range data.Views {
		tmpl, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templates, "templates/layout.html", "templates/"+string(view)+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing template for view '%s': %w", view, err)
		}
		views[view] = tmpl
	}
	return views, nil
}

// Handler returns the dashboard's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	guard := s.auth.Require

	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /{view}", s.handleView)

	mux.HandleFunc("GET /calendar", s.handleCalendar)
	mux.HandleFunc("POST /events", guard(s.handleAddEvent))
	mux.HandleFunc("POST /events/{id}/delete", guard(s.handleRemoveEvent))
	mux.HandleFunc("GET /events.ics", s.handleExport)

	mux.HandleFunc("GET /artists", s.handleArtists)
	mux.HandleFunc("POST /artists", guard(s.handleAddArtist))
	mux.HandleFunc("POST /artists/{name}/delete", guard(s.handleRemoveArtist))

	mux.HandleFunc("GET /search", s.handleSearch)

	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.HandleFunc("POST /settings", guard(s.handleSaveSettings))

	mux.HandleFunc("GET /api/artists", s.handleAPIArtists)
	mux.HandleFunc("GET /api/events", s.handleAPIEvents)
	mux.HandleFunc("GET /api/upcoming", s.handleAPIUpcoming)

	return s.logRequests(mux)
}

// Run serves the dashboard on opts.Addr until ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	s, err := New(opts)
	if err != nil {
		return err
	}

	srv := http.Server{Addr: opts.Addr, Handler: s.Handler()}

	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	s.log.Info("listening", zap.String("addr", opts.Addr), zap.Bool("auth", s.auth.Enabled()))

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
