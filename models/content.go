package models

import (
	"time"
)

// Reference/content rows below are bulk-replaced wholesale on each
// admin-triggered or scheduled refresh (delete-all-then-insert-all).
// Volumes are tens of rows, so no diffing.

// Standing is one league-table row.
type Standing struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Team     string `gorm:"not null" json:"team"`
	Wins     int    `gorm:"default:0" json:"wins"`
	Losses   int    `gorm:"default:0" json:"losses"`
	OTLosses int    `gorm:"default:0" json:"ot_losses"`
	Points   int    `gorm:"default:0" json:"points"`
	Rank     int    `gorm:"default:0" json:"rank"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// PlayerStat is one skater's season line.
type PlayerStat struct {
	ID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Number  int    `json:"number"`
	Pos     string `json:"position"`
	Games   int    `gorm:"default:0" json:"games"`
	Goals   int    `gorm:"default:0" json:"goals"`
	Assists int    `gorm:"default:0" json:"assists"`
	Points  int    `gorm:"default:0" json:"points"`
	PIM     int    `gorm:"default:0" json:"pim"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// RosterPlayer is one entry on the current roster page.
type RosterPlayer struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Number   int    `json:"number"`
	Pos      string `json:"position"`
	Shoots   string `json:"shoots"`
	Height   string `json:"height"`
	Weight   string `json:"weight"`
	Hometown string `json:"hometown"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// MerchItem is one item in the merchandise showcase.
type MerchItem struct {
	ID       string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Price    float64 `gorm:"default:0" json:"price"`
	ImageURL string  `gorm:"type:text" json:"image_url"`
	BuyURL   string  `gorm:"type:text" json:"buy_url"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Headline is one news item. Slug is derived from the title at refresh
// time and is what the frontend links by.
type Headline struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"not null;index" json:"slug"`
	Excerpt     string    `gorm:"type:text" json:"excerpt"`
	URL         string    `gorm:"type:text" json:"url"`
	PublishedAt time.Time `json:"published_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
