package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amonks/oshinavi/data"
	"github.com/google/uuid"
)

// InsertEvent validates the event, checks that its artist is tracked, gives
// it a fresh id, and stores it.
func (db *DB) InsertEvent(ctx context.Context, event *data.Event) error {
	typ, err := data.ParseEventType(string(event.Type))
	if err != nil {
		return err
	}
	event.Type = typ
	if err := event.Validate(); err != nil {
		return err
	}

	if _, err := db.GetArtist(ctx, event.ArtistName); errors.Is(err, data.ErrNotFound) {
		return fmt.Errorf("event '%s' for '%s': %w", event.Title, event.ArtistName, data.ErrUnknownArtist)
	} else if err != nil {
		return err
	}

	event.ID = uuid.NewString()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if err := db.WithContext(ctx).
		Create(event).
		Error; err != nil {
		return fmt.Errorf("error inserting event '%s': %w", event.Title, err)
	}
	return nil
}

func (db *DB) RemoveEvent(ctx context.Context, id string) error {
	result := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&data.Event{})
	if err := result.Error; err != nil {
		return fmt.Errorf("error removing event '%s': %w", id, err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event '%s': %w", id, data.ErrNotFound)
	}
	return nil
}

// ListEvents returns every event, ordered by date.
func (db *DB) ListEvents(ctx context.Context) ([]data.Event, error) {
	events := []data.Event{}
	if err := db.WithContext(ctx).
		Order("date asc").
		Order("title asc").
		Find(&events).
		Error; err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}

// EventsBetween returns the events dated within [from, to], inclusive.
func (db *DB) EventsBetween(ctx context.Context, from, to time.Time) ([]data.Event, error) {
	lo, hi := from.Format(data.DateLayout), to.Format(data.DateLayout)
	events := []data.Event{}
	if err := db.WithContext(ctx).
		Where("date between ? and ?", lo, hi).
		Order("date asc").
		Order("title asc").
		Find(&events).
		Error; err != nil {
		return nil, fmt.Errorf("error listing events between %s and %s: %w", lo, hi, err)
	}
	return events, nil
}

func (db *DB) CountEvents(ctx context.Context) (int, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&data.Event{}).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return int(count), nil
}
