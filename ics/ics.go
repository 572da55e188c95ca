// Package ics writes events as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amonks/oshinavi/data"
)

const (
	ProductID = "-//oshinavi//Events//EN"
	uidDomain = "oshinavi"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// Escape escapes a TEXT property value.
func Escape(s string) string {
	return escaper.Replace(s)
}

type writer struct {
	w   io.Writer
	err error
}

func (w *writer) line(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, fold(fmt.Sprintf(format, args...))+"\r\n")
}

// lineLimit is the longest a content line may be, in octets.
const lineLimit = 75

// fold breaks s into lines of at most lineLimit octets, each continuation
// starting with a space. Multi-byte characters are never split.
func fold(s string) string {
	if len(s) <= lineLimit {
		return s
	}
	var b strings.Builder
	limit := lineLimit
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		limit = lineLimit - 1
	}
	b.WriteString(s)
	return b.String()
}

// Write writes every event as an all-day VEVENT. Events whose dates don't
// parse are skipped.
func Write(out io.Writer, name string, events []data.Event, stamp time.Time) error {
	w := &writer{w: out}

	w.line("BEGIN:VCALENDAR")
	w.line("VERSION:2.0")
	w.line("PRODID:%s", ProductID)
	w.line("METHOD:PUBLISH")
	w.line("CALSCALE:GREGORIAN")
	w.line("X-WR-CALNAME:%s", Escape(name))

	dtstamp := stamp.UTC().Format("20060102T150405Z")
	for _, ev := range events {
		day, err := ev.Day(time.UTC)
		if err != nil {
			continue
		}
		w.line("BEGIN:VEVENT")
		w.line("UID:%s@%s", ev.ID, uidDomain)
		w.line("DTSTAMP:%s", dtstamp)
		w.line("DTSTART;VALUE=DATE:%s", day.Format("20060102"))
		w.line("DTEND;VALUE=DATE:%s", day.AddDate(0, 0, 1).Format("20060102"))
		w.line("SUMMARY:%s", Escape(ev.Title))
		w.line("DESCRIPTION:%s", Escape(ev.ArtistName+" - "+string(ev.Type)))
		w.line("CATEGORIES:%s", Escape(string(ev.Type)))
		w.line("END:VEVENT")
	}

	w.line("END:VCALENDAR")
	if w.err != nil {
		return fmt.Errorf("error writing calendar: %w", w.err)
	}
	return nil
}
