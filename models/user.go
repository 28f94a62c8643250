package models

import (
	"time"
)

// User is a registered fan account. Guest browsing never creates one of
// these — guests are a client-side flag and only hit public routes.
type User struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DisplayName  string    `gorm:"not null" json:"display_name"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserStats holds the running prediction totals for one user.
// Created lazily on the first prediction; mutated only by atomic
// increments so concurrent settlement runs never lose updates.
type UserStats struct {
	ID                 string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID             string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Pucks              int64     `gorm:"default:0" json:"pucks"`
	CorrectPredictions int64     `gorm:"default:0" json:"correct_predictions"`
	TotalPredictions   int64     `gorm:"default:0" json:"total_predictions"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
