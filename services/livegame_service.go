// services/livegame_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const liveGameCacheKey = "livegame:current"

// LiveFeed is the external scoreboard collaborator. An error or a
// false ok both mean "no data from this source" — the sync falls
// through to the local schedule.
type LiveFeed interface {
	CurrentGame(ctx context.Context) (*models.LiveGame, bool, error)
}

type LiveGameService struct {
	DB    *gorm.DB
	Feed  LiveFeed
	Cache *redis.Client // nil when REDIS_URL is not configured
	Team  string
}

func NewLiveGameService(db *gorm.DB, feed LiveFeed, cache *redis.Client, team string) *LiveGameService {
	return &LiveGameService{DB: db, Feed: feed, Cache: cache, Team: team}
}

// Sync refreshes the single canonical live-game record. Resolution
// order: external feed, then today's entry on the local schedule, then
// nothing — in which case the record is cleared rather than left
// stale. Feed failures are logged and absorbed; only store failures
// surface to the caller. "No game today" is a normal outcome, not an
// error.
func (s *LiveGameService) Sync(ctx context.Context) (*models.LiveGame, error) {
	next, found, err := s.Feed.CurrentGame(ctx)
	if err != nil {
		log.Printf("[LiveSync] feed unavailable, falling back to schedule: %v", err)
		found = false
	}

	if !found {
		next = s.fallbackFromSchedule(time.Now())
	}

	if err := s.replace(next); err != nil {
		return nil, err
	}
	s.publish(ctx, next)

	if next == nil {
		log.Printf("[LiveSync] no game today, live record cleared")
	}
	return next, nil
}

// fallbackFromSchedule synthesizes a pregame record from a schedule
// entry dated today, if one exists. Finalized games are excluded — a
// feed outage after a local result must not resurface the game as a
// scoreless "Scheduled" record.
func (s *LiveGameService) fallbackFromSchedule(now time.Time) *models.LiveGame {
	start, end := DayWindow(now)

	var game models.Game
	err := s.DB.Where("game_date >= ? AND game_date < ?", start, end).
		Where("status IN ?", []models.GameStatus{models.GameStatusScheduled, models.GameStatusInProgress}).
		Order("game_date ASC").
		First(&game).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[LiveSync] schedule lookup failed: %v", err)
		}
		return nil
	}

	lg := SynthesizeScheduled(game, s.Team)
	return &lg
}

// DayWindow bounds the calendar day containing now, in now's location.
func DayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// SynthesizeScheduled builds the pregame live record for a schedule
// entry: 0-0, not live, status Scheduled.
func SynthesizeScheduled(game models.Game, team string) models.LiveGame {
	home, away := team, game.Opponent
	if !game.Home {
		home, away = game.Opponent, team
	}
	return models.LiveGame{
		HomeTeam:   home,
		AwayTeam:   away,
		GameStatus: "Scheduled",
	}
}

// replace swaps the whole LiveGame collection for the new record (or
// for nothing) in one transaction, so readers never see two records or
// a partial mix of old and new. The penalty log is cleared when the
// matchup changes — a new game has begun.
func (s *LiveGameService) replace(next *models.LiveGame) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var prev models.LiveGame
		havePrev := tx.Order("created_at DESC").First(&prev).Error == nil

		if err := tx.Where("1 = 1").Delete(&models.LiveGame{}).Error; err != nil {
			return err
		}

		newGameStarted := next == nil || !havePrev || !next.SameMatchup(&prev)
		if newGameStarted {
			if err := tx.Where("1 = 1").Delete(&models.Penalty{}).Error; err != nil {
				return err
			}
		}

		if next == nil {
			return nil
		}
		if next.ID == "" {
			next.ID = uuid.NewString()
		}
		return tx.Create(next).Error
	})
}

// publish mirrors the current record into the cache for cheap fan-out
// reads. Best effort only.
func (s *LiveGameService) publish(ctx context.Context, lg *models.LiveGame) {
	if s.Cache == nil {
		return
	}
	if lg == nil {
		if err := s.Cache.Del(ctx, liveGameCacheKey).Err(); err != nil {
			log.Printf("[LiveSync] cache clear failed: %v", err)
		}
		return
	}
	raw, err := json.Marshal(lg)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, liveGameCacheKey, raw, time.Minute).Err(); err != nil {
		log.Printf("[LiveSync] cache write failed: %v", err)
	}
}

// --- HTTP surface ---

// GetLiveGame returns the stored record. Clients poll this on a 30s
// timer; a missing record means no game today.
func (s *LiveGameService) GetLiveGame(c *fiber.Ctx) error {
	var lg models.LiveGame
	if err := s.DB.First(&lg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"game": nil})
		}
		log.Printf("[LiveSync] DB error reading live game: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load live game"})
	}
	return c.JSON(fiber.Map{"game": lg})
}

// RefreshLiveGame is the on-demand administrative/cron trigger.
func (s *LiveGameService) RefreshLiveGame(c *fiber.Ctx) error {
	lg, err := s.Sync(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(RefreshResult{
			Success: false,
			Message: "live game refresh failed: " + err.Error(),
		})
	}
	count := 0
	msg := "no game today"
	if lg != nil {
		count = 1
		msg = "live game updated"
	}
	return c.JSON(RefreshResult{Success: true, Message: msg, Count: count})
}

// AddPenalty appends one entry to the penalty log for the current live
// game. There is no edit operation, only append and bulk clear.
func (s *LiveGameService) AddPenalty(c *fiber.Ctx) error {
	var req struct {
		Team          string `json:"team"`
		Player        string `json:"player"`
		Infraction    string `json:"infraction"`
		Minutes       int    `json:"minutes"`
		Period        string `json:"period"`
		TimeRemaining string `json:"time_remaining"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Team == "" || req.Player == "" || req.Infraction == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "team, player and infraction are required"})
	}
	if req.Minutes <= 0 {
		req.Minutes = 2
	}

	var lg models.LiveGame
	if err := s.DB.First(&lg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no live game to attach penalty to"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	penalty := models.Penalty{
		ID:            uuid.NewString(),
		LiveGameID:    lg.ID,
		Team:          req.Team,
		Player:        req.Player,
		Infraction:    req.Infraction,
		Minutes:       req.Minutes,
		Period:        req.Period,
		TimeRemaining: req.TimeRemaining,
	}
	if err := s.DB.Create(&penalty).Error; err != nil {
		log.Printf("[LiveSync] failed to record penalty: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record penalty"})
	}
	return c.Status(fiber.StatusCreated).JSON(penalty)
}

// ListPenalties returns the log for the current game window, oldest
// first.
func (s *LiveGameService) ListPenalties(c *fiber.Ctx) error {
	var penalties []models.Penalty
	if err := s.DB.Order("created_at ASC").Find(&penalties).Error; err != nil {
		log.Printf("[LiveSync] DB error listing penalties: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load penalties"})
	}
	return c.JSON(penalties)
}

// ClearPenalties is the administrative reset of the penalty log.
func (s *LiveGameService) ClearPenalties(c *fiber.Ctx) error {
	res := s.DB.Where("1 = 1").Delete(&models.Penalty{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(RefreshResult{
			Success: false,
			Message: "failed to clear penalties: " + res.Error.Error(),
		})
	}
	return c.JSON(RefreshResult{
		Success: true,
		Message: "penalties cleared",
		Count:   int(res.RowsAffected),
	})
}
