package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amonks/oshinavi/calendar"
	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/ics"
	"go.uber.org/zap"
)

// handleView sends a view name, or anything unknown, to its page. Unknown
// names land on the dashboard.
func (s *Server) handleView(w http.ResponseWriter, req *http.Request) {
	view := data.ParseView(req.PathValue("view"))
	http.Redirect(w, req, view.Path(), http.StatusFound)
}

type dashboard struct {
	Today    time.Time
	Artists  int
	Events   int
	Days     int
	Upcoming []data.Event
}

func (s *Server) handleDashboard(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	artists, err := s.db.CountArtists(ctx)
	if err != nil {
		s.fail(w, err)
		return
	}
	events, err := s.db.ListEvents(ctx)
	if err != nil {
		s.fail(w, err)
		return
	}

	now := s.now()
	s.render(w, req, data.ViewDashboard, http.StatusOK, page{Data: dashboard{
		Today:    now,
		Artists:  artists,
		Events:   len(events),
		Days:     calendar.UpcomingDays,
		Upcoming: calendar.Upcoming(events, now, calendar.UpcomingDays),
	}})
}

type calendarPage struct {
	Grid     calendar.Grid
	Weekdays []string
	Prev     time.Time
	Next     time.Time
	Selected time.Time
	Events   []data.Event
	Artists  []data.Artist
	Types    []data.EventType
	Form     eventForm
}

type eventForm struct {
	Artist string
	Title  string
	Date   string
	Type   string
}

func (s *Server) handleCalendar(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	s.renderCalendar(w, req, q.Get("month"), q.Get("day"), eventForm{}, "", http.StatusOK)
}

func (s *Server) renderCalendar(w http.ResponseWriter, req *http.Request, monthParam, dayParam string, form eventForm, errMsg string, status int) {
	ctx := req.Context()
	today := s.now()

	selected, err := calendar.ParseDay(dayParam, today)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid day '%s'", dayParam), http.StatusBadRequest)
		return
	}
	month, err := calendar.ParseMonth(monthParam, selected)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid month '%s'", monthParam), http.StatusBadRequest)
		return
	}

	events, err := s.db.ListEvents(ctx)
	if err != nil {
		s.fail(w, err)
		return
	}
	artists, err := s.db.ListArtists(ctx)
	if err != nil {
		s.fail(w, err)
		return
	}

	if form.Date == "" {
		form.Date = selected.Format(data.DateLayout)
	}
	if form.Artist == "" && len(artists) > 0 {
		form.Artist = artists[0].Name
	}
	if form.Type == "" {
		form.Type = string(data.EventTypeLive)
	}

	s.render(w, req, data.ViewCalendar, status, page{
		Error: errMsg,
		Data: calendarPage{
			Grid: calendar.NewGrid(month, events, calendar.Options{
				Today:    today,
				Selected: selected,
				SixWeeks: true,
			}),
			Weekdays: calendar.Weekdays,
			Prev:     calendar.PrevMonth(month),
			Next:     calendar.NextMonth(month),
			Selected: selected,
			Events:   calendar.EventsOn(events, selected),
			Artists:  artists,
			Types:    data.EventTypes,
			Form:     form,
		},
	})
}

func calendarURL(day string) string {
	v := url.Values{}
	v.Set("day", day)
	if len(day) >= len(calendar.MonthLayout) {
		v.Set("month", day[:len(calendar.MonthLayout)])
	}
	return "/calendar?" + v.Encode()
}

func (s *Server) handleAddEvent(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := eventForm{
		Artist: strings.TrimSpace(req.PostForm.Get("artist")),
		Title:  strings.TrimSpace(req.PostForm.Get("title")),
		Date:   strings.TrimSpace(req.PostForm.Get("date")),
		Type:   req.PostForm.Get("type"),
	}

	event := &data.Event{
		ArtistName: form.Artist,
		Title:      form.Title,
		Date:       form.Date,
		Type:       data.EventType(form.Type),
	}
	err := s.db.InsertEvent(req.Context(), event)
	switch {
	case errors.Is(err, data.ErrUnknownArtist):
		s.renderCalendar(w, req, "", "", form, "Please add an artist first before creating an event.", http.StatusBadRequest)
		return
	case errors.Is(err, data.ErrInvalidEvent):
		day := ""
		if _, perr := time.Parse(data.DateLayout, form.Date); perr == nil {
			day = form.Date
		}
		s.renderCalendar(w, req, "", day, form, "Please fill in the title, artist, and date.", http.StatusBadRequest)
		return
	case err != nil:
		s.fail(w, err)
		return
	}

	s.log.Info("added event",
		zap.String("id", event.ID),
		zap.String("artist", event.ArtistName),
		zap.String("date", event.Date))
	http.Redirect(w, req, calendarURL(event.Date), http.StatusSeeOther)
}

func (s *Server) handleRemoveEvent(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if err := s.db.RemoveEvent(req.Context(), id); errors.Is(err, data.ErrNotFound) {
		http.Error(w, fmt.Sprintf("no event '%s'", id), http.StatusNotFound)
		return
	} else if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("removed event", zap.String("id", id))

	to := "/calendar"
	if day := req.FormValue("day"); day != "" {
		to = calendarURL(day)
	}
	http.Redirect(w, req, to, http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, req *http.Request) {
	events, err := s.db.ListEvents(req.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="oshinavi.ics"`)
	if err := ics.Write(w, "oshinavi", events, s.now()); err != nil {
		s.log.Error("error writing calendar", zap.Error(err))
	}
}

func (s *Server) handleArtists(w http.ResponseWriter, req *http.Request) {
	artists, err := s.db.ListArtists(req.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, req, data.ViewMyArtists, http.StatusOK, page{Data: artists})
}

func (s *Server) handleAddArtist(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	artist := &data.Artist{
		Name:            strings.TrimSpace(req.PostForm.Get("name")),
		Genre:           strings.TrimSpace(req.PostForm.Get("genre")),
		Description:     strings.TrimSpace(req.PostForm.Get("description")),
		OfficialWebsite: strings.TrimSpace(req.PostForm.Get("officialWebsite")),
	}
	if artist.Name == "" {
		http.Error(w, "artist name is required", http.StatusBadRequest)
		return
	}

	added, err := s.db.InsertArtist(req.Context(), artist)
	if err != nil {
		s.fail(w, err)
		return
	}
	if added {
		s.log.Info("added artist", zap.String("name", artist.Name))
	}
	http.Redirect(w, req, data.ViewMyArtists.Path(), http.StatusSeeOther)
}

func (s *Server) handleRemoveArtist(w http.ResponseWriter, req *http.Request) {
	name := req.PathValue("name")
	if err := s.db.RemoveArtist(req.Context(), name); errors.Is(err, data.ErrNotFound) {
		http.Error(w, fmt.Sprintf("no artist '%s'", name), http.StatusNotFound)
		return
	} else if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("removed artist", zap.String("name", name))
	http.Redirect(w, req, data.ViewMyArtists.Path(), http.StatusSeeOther)
}

type searchPage struct {
	Query   string
	Result  *data.Artist
	Tracked bool
	Enabled bool
}

func (s *Server) handleSearch(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	query := strings.TrimSpace(req.URL.Query().Get("q"))
	p := searchPage{Query: query, Enabled: s.searcher != nil}

	if query == "" || s.searcher == nil {
		s.render(w, req, data.ViewSearch, http.StatusOK, page{Data: p})
		return
	}

	if !s.lookups.Allow() {
		s.render(w, req, data.ViewSearch, http.StatusTooManyRequests, page{
			Error: "Too many searches. Please wait a moment and try again.",
			Data:  p,
		})
		return
	}

	artist, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.render(w, req, data.ViewSearch, http.StatusBadGateway, page{Error: err.Error(), Data: p})
		return
	}
	p.Result = artist

	if _, err := s.db.GetArtist(ctx, artist.Name); err == nil {
		p.Tracked = true
	} else if !errors.Is(err, data.ErrNotFound) {
		s.fail(w, err)
		return
	}

	s.render(w, req, data.ViewSearch, http.StatusOK, page{Data: p})
}

type settingsPage struct {
	Current string
	Default string
}

func (s *Server) handleSettings(w http.ResponseWriter, req *http.Request) {
	current, err := s.db.Wallpaper(req.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	p := page{Data: settingsPage{Current: current, Default: data.DefaultWallpaperURL}}
	if req.URL.Query().Has("saved") {
		p.Flash = "Wallpaper updated!"
	}
	s.render(w, req, data.ViewSettings, http.StatusOK, p)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	wallpaper := strings.TrimSpace(req.PostForm.Get("wallpaper"))
	if wallpaper == "" {
		wallpaper = data.DefaultWallpaperURL
	}
	if u, err := url.Parse(wallpaper); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		s.render(w, req, data.ViewSettings, http.StatusBadRequest, page{
			Error: fmt.Sprintf("'%s' is not an http(s) URL.", wallpaper),
			Data:  settingsPage{Current: wallpaper, Default: data.DefaultWallpaperURL},
		})
		return
	}
	if err := s.db.SetWallpaper(req.Context(), wallpaper); err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("set wallpaper", zap.String("url", wallpaper))
	http.Redirect(w, req, data.ViewSettings.Path()+"?saved=1", http.StatusSeeOther)
}

func (s *Server) handleAPIArtists(w http.ResponseWriter, req *http.Request) {
	artists, err := s.db.ListArtists(req.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if artists == nil {
		artists = []data.Artist{}
	}
	s.writeJSON(w, artists)
}

func (s *Server) handleAPIEvents(w http.ResponseWriter, req *http.Request) {
	events, err := s.db.ListEvents(req.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if events == nil {
		events = []data.Event{}
	}
	s.writeJSON(w, events)
}

func (s *Server) handleAPIUpcoming(w http.ResponseWriter, req *http.Request) {
	events, err := s.db.ListEvents(req.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	upcoming := calendar.Upcoming(events, s.now(), calendar.UpcomingDays)
	s.writeJSON(w, upcoming)
}
