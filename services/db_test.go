package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database for store-level tests.
// The production schema relies on postgres uuid defaults, which sqlite
// cannot evaluate, so the tables are created directly; ids are set
// explicitly in tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	// One connection so every statement sees the same :memory: database.
	sqlDB.SetMaxOpenConns(1)

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE user_stats (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			pucks INTEGER NOT NULL DEFAULT 0,
			correct_predictions INTEGER NOT NULL DEFAULT 0,
			total_predictions INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE games (
			id TEXT PRIMARY KEY,
			game_date DATETIME NOT NULL,
			opponent TEXT NOT NULL,
			home BOOLEAN NOT NULL DEFAULT TRUE,
			location TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'scheduled',
			stars_score INTEGER,
			opponent_score INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE predictions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			picked_winner TEXT NOT NULL,
			awarded BOOLEAN NOT NULL DEFAULT FALSE,
			correct BOOLEAN,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE(user_id, game_id)
		)`,
		`CREATE TABLE live_games (
			id TEXT PRIMARY KEY,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			home_score INTEGER NOT NULL DEFAULT 0,
			away_score INTEGER NOT NULL DEFAULT 0,
			period TEXT NOT NULL DEFAULT '',
			time_remaining TEXT NOT NULL DEFAULT '',
			home_shots INTEGER NOT NULL DEFAULT 0,
			away_shots INTEGER NOT NULL DEFAULT 0,
			is_live BOOLEAN NOT NULL DEFAULT FALSE,
			game_status TEXT NOT NULL DEFAULT 'Scheduled',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE penalties (
			id TEXT PRIMARY KEY,
			live_game_id TEXT NOT NULL,
			team TEXT NOT NULL,
			player TEXT NOT NULL,
			infraction TEXT NOT NULL,
			minutes INTEGER NOT NULL DEFAULT 2,
			period TEXT NOT NULL DEFAULT '',
			time_remaining TEXT NOT NULL DEFAULT '',
			created_at DATETIME
		)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("creating test schema: %v", err)
		}
	}
	return db
}
