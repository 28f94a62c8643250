package models

import (
	"time"
)

// LiveGame is the single canonical record for the game currently in
// progress (or most recently active). The whole table is replaced on
// every sync — old row deleted, at most one new row inserted — so
// readers never observe a half-updated mix of two games.
type LiveGame struct {
	ID            string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	HomeTeam      string    `gorm:"not null" json:"home_team"`
	AwayTeam      string    `gorm:"not null" json:"away_team"`
	HomeScore     int       `gorm:"default:0" json:"home_score"`
	AwayScore     int       `gorm:"default:0" json:"away_score"`
	Period        string    `json:"period"`
	TimeRemaining string    `json:"time_remaining"`
	HomeShots     int       `gorm:"default:0" json:"home_shots"`
	AwayShots     int       `gorm:"default:0" json:"away_shots"`
	IsLive        bool      `gorm:"default:false" json:"is_live"`
	GameStatus    string    `gorm:"not null;default:'Scheduled'" json:"game_status"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SameMatchup reports whether another live record describes the same
// pairing. Used to decide whether the penalty log carries over.
func (lg *LiveGame) SameMatchup(other *LiveGame) bool {
	if other == nil {
		return false
	}
	return lg.HomeTeam == other.HomeTeam && lg.AwayTeam == other.AwayTeam
}

// Penalty is one entry in the append-only penalty log for the current
// live game. Rows reference the LiveGame they were recorded under and
// are cleared in bulk when a new game begins.
type Penalty struct {
	ID            string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	LiveGameID    string    `gorm:"not null;index" json:"live_game_id"`
	Team          string    `gorm:"not null" json:"team"`
	Player        string    `gorm:"not null" json:"player"`
	Infraction    string    `gorm:"not null" json:"infraction"`
	Minutes       int       `gorm:"default:2" json:"minutes"`
	Period        string    `json:"period"`
	TimeRemaining string    `json:"time_remaining"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}
