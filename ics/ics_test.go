package ics_test

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/ics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	events := []data.Event{
		{ID: "abc", ArtistName: "Ado", Title: "Wish, Tour; Day 1", Date: "2025-12-31", Type: data.EventTypeLive},
		{ID: "def", ArtistName: "Aimer", Title: "Single", Date: "2026-01-05", Type: data.EventTypeRelease},
		{ID: "bad", ArtistName: "Aimer", Title: "Broken", Date: "soon", Type: data.EventTypeOther},
	}
	stamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, ics.Write(&buf, "My Events", events, stamp))
	body := buf.String()

	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))

	for _, expect := range []string{
		"PRODID:" + ics.ProductID,
		"X-WR-CALNAME:My Events",
		"UID:abc@oshinavi",
		"DTSTAMP:20250102T030405Z",
		"DTSTART;VALUE=DATE:20251231",
		"DTEND;VALUE=DATE:20260101",
		`SUMMARY:Wish\, Tour\; Day 1`,
		"DESCRIPTION:Aimer - Release",
		"CATEGORIES:Release",
	} {
		assert.Contains(t, body, expect)
	}
	assert.NotContains(t, body, "Broken")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\\b\nc`, ics.Escape("a\\b\nc"))
}

func TestLongLinesAreFolded(t *testing.T) {
	title := strings.Repeat("武道館ライブ", 12)
	events := []data.Event{
		{ID: "abc", ArtistName: "Ado", Title: title, Date: "2025-12-31", Type: data.EventTypeLive},
	}

	var buf bytes.Buffer
	require.NoError(t, ics.Write(&buf, "My Events", events, time.Now()))
	body := buf.String()

	lines := strings.Split(strings.TrimSuffix(body, "\r\n"), "\r\n")
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 75, line)
		assert.True(t, utf8.ValidString(line), line)
	}

	unfolded := strings.ReplaceAll(body, "\r\n ", "")
	assert.Contains(t, unfolded, "SUMMARY:"+title+"\r\n")
	assert.Greater(t, len(lines), strings.Count(unfolded, "\r\n"))
}
