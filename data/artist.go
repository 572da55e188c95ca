package data

import (
	"net/url"
	"time"
)

// Artists are the people and groups the user follows. The name is the key:
// adding an artist whose name is already tracked does nothing.
type Artist struct {
	// like "YOASOBI"
	Name string `json:"name" gorm:"primaryKey"`

	// like "J-pop"
	Genre string `json:"genre"`

	// A brief 2-3 sentence biography.
	Description string `json:"description"`

	// like "https://www.yoasobi-music.jp". Empty if the lookup didn't find one.
	OfficialWebsite string `json:"officialWebsite"`

	// Filled in from the official website's og:image by the images worker.
	ImageURL string `json:"imageUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Image returns the artist's image, or a placeholder that is stable for a
// given name.
func (a Artist) Image() string {
	if a.ImageURL != "" {
		return a.ImageURL
	}
	return "https://picsum.photos/seed/" + url.PathEscape(a.Name) + "/400/250"
}

// HasWebsite reports whether the official website is set.
func (a Artist) HasWebsite() bool {
	return a.OfficialWebsite != ""
}
