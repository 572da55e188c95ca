// Package data holds the types shared by the store, the lookup client, and
// the views.
package data

import "errors"

// DefaultWallpaperURL is the background image used until the user picks one.
const DefaultWallpaperURL = "https://picsum.photos/seed/bg/1920/1080"

// Setting is a single named preference.
type Setting struct {
	Name  string `gorm:"primaryKey"`
	Value string
}

const SettingWallpaperURL = "wallpaper_url"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidEvent  = errors.New("invalid event")
	ErrUnknownArtist = errors.New("artist is not tracked")
)
