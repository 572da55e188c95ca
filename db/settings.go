package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/oshinavi/data"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Wallpaper returns the background image URL, or the default if the user
// hasn't set one.
func (db *DB) Wallpaper(ctx context.Context) (string, error) {
	var setting data.Setting
	if err := db.WithContext(ctx).
		Where("name = ?", data.SettingWallpaperURL).
		First(&setting).
		Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return data.DefaultWallpaperURL, nil
	} else if err != nil {
		return "", fmt.Errorf("error getting wallpaper: %w", err)
	}
	return setting.Value, nil
}

func (db *DB) SetWallpaper(ctx context.Context, url string) error {
	setting := data.Setting{Name: data.SettingWallpaperURL, Value: strings.TrimSpace(url)}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&setting).
		Error; err != nil {
		return fmt.Errorf("error setting wallpaper to '%s': %w", url, err)
	}
	return nil
}
