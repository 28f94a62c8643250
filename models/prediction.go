package models

import (
	"time"
)

// PickedWinner is the side a user predicted.
type PickedWinner string

const (
	PickStars    PickedWinner = "stars"
	PickOpponent PickedWinner = "opponent"
)

// Prediction is one user's pick for one game. At most one row exists
// per (user, game); submissions while the game is still scheduled
// upsert into it. After that the row is immutable except for the
// one-time awarded:false -> true transition performed by settlement,
// which sets Correct at the same moment.
type Prediction struct {
	ID           string       `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID       string       `gorm:"not null;index;uniqueIndex:idx_predictions_user_game" json:"user_id"`
	GameID       string       `gorm:"not null;index;uniqueIndex:idx_predictions_user_game" json:"game_id"`
	PickedWinner PickedWinner `gorm:"not null" json:"picked_winner"`
	Awarded      bool         `gorm:"default:false;index" json:"awarded"`
	Correct      *bool        `json:"correct,omitempty"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}
