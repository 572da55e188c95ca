package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/amonks/oshinavi/calendar"
	"github.com/amonks/oshinavi/data"
	"go.uber.org/zap"
)

var funcs = template.FuncMap{
	"date": func(s, layout string) string {
		t, err := time.Parse(data.DateLayout, s)
		if err != nil {
			return s
		}
		return t.Format(layout)
	},
	"format": func(t time.Time, layout string) string { return t.Format(layout) },
	"iso":    func(t time.Time) string { return t.Format(data.DateLayout) },
	"month":  func(t time.Time) string { return t.Format(calendar.MonthLayout) },
	"path":   url.PathEscape,
}

// page is what layout.html renders. Data belongs to the view's own template.
type page struct {
	View      data.View
	Views     []data.View
	Wallpaper string
	Flash     string
	Error     string
	Data      any
}

func (s *Server) render(w http.ResponseWriter, req *http.Request, view data.View, status int, p page) {
	p.View = view
	p.Views = data.Views

	wallpaper, err := s.db.Wallpaper(req.Context())
	if err != nil {
		s.log.Error("error loading wallpaper", zap.Error(err))
		wallpaper = data.DefaultWallpaperURL
	}
	p.Wallpaper = wallpaper

	var buf bytes.Buffer
	if err := s.views[view].ExecuteTemplate(&buf, "layout.html", p); err != nil {
		s.fail(w, fmt.Errorf("error rendering view '%s': %w", view, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug("error writing response", zap.Error(err))
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.Error("request failed", zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	bs, err := json.Marshal(v)
	if err != nil {
		s.fail(w, fmt.Errorf("error encoding json: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(bs); err != nil {
		s.log.Debug("error writing response", zap.Error(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		s.log.Debug("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
