package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/oshinavi/data"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertArtist, given an Artist, inserts it into the artists table, doing
// nothing if an artist with that name is already tracked. It reports whether
// a row was added.
func (db *DB) InsertArtist(ctx context.Context, artist *data.Artist) (bool, error) {
	artist.Name = strings.TrimSpace(artist.Name)
	if artist.Name == "" {
		return false, fmt.Errorf("no artist name")
	}
	if artist.CreatedAt.IsZero() {
		artist.CreatedAt = time.Now()
	}
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(artist)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("error inserting artist '%s': %w", artist.Name, err)
	}
	return result.RowsAffected > 0, nil
}

// RemoveArtist deletes the named artist along with every event linked to it.
func (db *DB) RemoveArtist(ctx context.Context, name string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("artist_name = ?", name).
			Delete(&data.Event{}).
			Error; err != nil {
			return fmt.Errorf("error removing events for artist '%s': %w", name, err)
		}

		result := tx.
			Where("name = ?", name).
			Delete(&data.Artist{})
		if err := result.Error; err != nil {
			return fmt.Errorf("error removing artist '%s': %w", name, err)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("artist '%s': %w", name, data.ErrNotFound)
		}
		return nil
	})
}

func (db *DB) GetArtist(ctx context.Context, name string) (*data.Artist, error) {
	var artist data.Artist
	if err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&artist).
		Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("artist '%s': %w", name, data.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("error getting artist '%s': %w", name, err)
	}
	return &artist, nil
}

// ListArtists returns every tracked artist in the order they were added.
func (db *DB) ListArtists(ctx context.Context) ([]data.Artist, error) {
	artists := []data.Artist{}
	if err := db.WithContext(ctx).
		Order("created_at asc").
		Order("rowid asc").
		Find(&artists).
		Error; err != nil {
		return nil, fmt.Errorf("error listing artists: %w", err)
	}
	return artists, nil
}

func (db *DB) CountArtists(ctx context.Context) (int, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&data.Artist{}).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting artists: %w", err)
	}
	return int(count), nil
}

// ArtistsWithoutImage returns up to limit artists that have an official
// website but no image yet.
func (db *DB) ArtistsWithoutImage(ctx context.Context, limit int) ([]data.Artist, error) {
	artists := []data.Artist{}
	if err := db.WithContext(ctx).
		Where("image_url = ''").
		Where("official_website != ''").
		Order("created_at asc").
		Limit(limit).
		Find(&artists).
		Error; err != nil {
		return nil, fmt.Errorf("error getting %d artists without images: %w", limit, err)
	}
	return artists, nil
}

func (db *DB) SetArtistImage(ctx context.Context, name, imageURL string) error {
	if err := db.WithContext(ctx).
		Model(&data.Artist{}).
		Where("name = ?", name).
		Update("image_url", imageURL).
		Error; err != nil {
		return fmt.Errorf("error setting image for artist '%s': %w", name, err)
	}
	return nil
}

// SetArtistDescription sets the description of an artist that has none.
func (db *DB) SetArtistDescription(ctx context.Context, name, description string) error {
	if err := db.WithContext(ctx).
		Model(&data.Artist{}).
		Where("name = ?", name).
		Where("description = ''").
		Update("description", description).
		Error; err != nil {
		return fmt.Errorf("error setting description for artist '%s': %w", name, err)
	}
	return nil
}
