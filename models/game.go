package models

import (
	"time"
)

// GameStatus is the lifecycle state of a scheduled game.
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
)

// Game is one entry on the season schedule. Created by the schedule
// import, mutated only by status/score transitions, removed only by a
// bulk schedule refresh. Score fields are set if and only if the game
// is final.
type Game struct {
	ID            string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	GameDate      time.Time  `gorm:"not null;index" json:"game_date"`
	Opponent      string     `gorm:"not null" json:"opponent"`
	Home          bool       `gorm:"default:true" json:"home"`
	Location      string     `json:"location"`
	Status        GameStatus `gorm:"not null;default:'scheduled';index" json:"status"`
	StarsScore    *int       `json:"stars_score,omitempty"`
	OpponentScore *int       `json:"opponent_score,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// Final reports whether the game has a settled outcome.
func (g *Game) Final() bool {
	return g.Status == GameStatusFinal && g.StarsScore != nil && g.OpponentScore != nil
}
