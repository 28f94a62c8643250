package models

import (
	"time"
)

// Post is one entry on the fan feed.
type Post struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	AuthorName string    `gorm:"not null" json:"author_name"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// ChatMessage is one line in the game-day chat. Clients poll the list
// endpoint; there is no push channel.
type ChatMessage struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	AuthorName string    `gorm:"not null" json:"author_name"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
