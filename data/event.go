package data

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage format of Event.Date.
const DateLayout = "2006-01-02"

type EventType string

const (
	EventTypeLive         EventType = "Live"
	EventTypeRelease      EventType = "Release"
	EventTypeTVAppearance EventType = "TV Appearance"
	EventTypeOther        EventType = "Other"
)

// EventTypes lists every event type in display order.
var EventTypes = []EventType{
	EventTypeLive,
	EventTypeRelease,
	EventTypeTVAppearance,
	EventTypeOther,
}

// ParseEventType returns the EventType named by s. The empty string is a
// live show.
func ParseEventType(s string) (EventType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EventTypeLive, nil
	}
	for _, t := range EventTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported event type '%s': %w", s, ErrInvalidEvent)
}

func (t EventType) String() string { return string(t) }

// Events are dated occurrences (shows, releases, appearances) linked to an
// artist by name.
type Event struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ArtistName string    `json:"artistName"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	Type       EventType `json:"type"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks that the event has a title, an artist, a parseable date,
// and a known type.
func (e *Event) Validate() error {
	var errs []error
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, errors.New("no title"))
	}
	if strings.TrimSpace(e.ArtistName) == "" {
		errs = append(errs, errors.New("no artist"))
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		errs = append(errs, fmt.Errorf("bad date '%s'", e.Date))
	}
	if _, err := ParseEventType(string(e.Type)); err != nil {
		errs = append(errs, fmt.Errorf("bad type '%s'", e.Type))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, errors.Join(errs...))
	}
	return nil
}

// Day returns midnight of the event's date in loc.
func (e Event) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, e.Date, loc)
}
