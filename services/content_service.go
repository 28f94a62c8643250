// services/content_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/aidanleach15-hash/shining-stars-sub000/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// RefreshResult is the uniform response for every administrative
// "refresh X" operation. Each op is idempotent and safe to re-invoke.
type RefreshResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// LeagueSource is the external data collaborator for reference
// content. Implementations fetch and map; shape problems surface as
// errors and become failed refresh results, never panics.
type LeagueSource interface {
	Schedule(ctx context.Context) ([]models.Game, error)
	Standings(ctx context.Context) ([]models.Standing, error)
	PlayerStats(ctx context.Context) ([]models.PlayerStat, error)
	Roster(ctx context.Context) ([]models.RosterPlayer, error)
	Merchandise(ctx context.Context) ([]models.MerchItem, error)
	Headlines(ctx context.Context) ([]models.Headline, error)
}

type ContentService struct {
	DB      *gorm.DB
	Source  LeagueSource
	Settler *SettlementService
}

func NewContentService(db *gorm.DB, source LeagueSource, settler *SettlementService) *ContentService {
	return &ContentService{DB: db, Source: source, Settler: settler}
}

// replaceAll swaps out a whole reference collection in one
// transaction. Volumes are tens of rows and refreshes infrequent, so
// delete-all-then-insert-all beats diffing on simplicity.
func replaceAll[T any](db *gorm.DB, rows []T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Where("1 = 1").Delete(&zero).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func refreshFailed(c *fiber.Ctx, what string, err error) error {
	log.Printf("[Refresh] %s failed: %v", what, err)
	return c.Status(fiber.StatusInternalServerError).JSON(RefreshResult{
		Success: false,
		Message: fmt.Sprintf("%s refresh failed: %v", what, err),
	})
}

// RefreshSchedule bulk-replaces the season schedule from the league
// source.
func (s *ContentService) RefreshSchedule(c *fiber.Ctx) error {
	games, err := s.Source.Schedule(c.Context())
	if err != nil {
		return refreshFailed(c, "schedule", err)
	}
	for i := range games {
		games[i].ID = uuid.NewString()
	}
	if err := replaceAll(s.DB, games); err != nil {
		return refreshFailed(c, "schedule", err)
	}
	return c.JSON(RefreshResult{Success: true, Message: "schedule refreshed", Count: len(games)})
}

func (s *ContentService) replaceStandings(rows []models.Standing) error {
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}
	return replaceAll(s.DB, rows)
}

// RefreshStandings bulk-replaces the league table, then runs
// settlement opportunistically — fresh standings usually mean newly
// finalized games.
func (s *ContentService) RefreshStandings(c *fiber.Ctx) error {
	rows, err := s.Source.Standings(c.Context())
	if err != nil {
		return refreshFailed(c, "standings", err)
	}
	if err := s.replaceStandings(rows); err != nil {
		return refreshFailed(c, "standings", err)
	}

	if _, err := s.Settler.SettlePredictions(); err != nil {
		log.Printf("[Refresh] opportunistic settlement failed: %v", err)
	}

	return c.JSON(RefreshResult{Success: true, Message: "standings refreshed", Count: len(rows)})
}

func (s *ContentService) RefreshPlayerStats(c *fiber.Ctx) error {
	rows, err := s.Source.PlayerStats(c.Context())
	if err != nil {
		return refreshFailed(c, "player stats", err)
	}
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}
	if err := replaceAll(s.DB, rows); err != nil {
		return refreshFailed(c, "player stats", err)
	}
	return c.JSON(RefreshResult{Success: true, Message: "player stats refreshed", Count: len(rows)})
}

func (s *ContentService) RefreshRoster(c *fiber.Ctx) error {
	rows, err := s.Source.Roster(c.Context())
	if err != nil {
		return refreshFailed(c, "roster", err)
	}
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}
	if err := replaceAll(s.DB, rows); err != nil {
		return refreshFailed(c, "roster", err)
	}
	return c.JSON(RefreshResult{Success: true, Message: "roster refreshed", Count: len(rows)})
}

func (s *ContentService) RefreshMerchandise(c *fiber.Ctx) error {
	rows, err := s.Source.Merchandise(c.Context())
	if err != nil {
		return refreshFailed(c, "merchandise", err)
	}
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}
	if err := replaceAll(s.DB, rows); err != nil {
		return refreshFailed(c, "merchandise", err)
	}
	return c.JSON(RefreshResult{Success: true, Message: "merchandise refreshed", Count: len(rows)})
}

// RefreshHeadlines bulk-replaces the news list; slugs are derived from
// titles at refresh time.
func (s *ContentService) RefreshHeadlines(c *fiber.Ctx) error {
	rows, err := s.Source.Headlines(c.Context())
	if err != nil {
		return refreshFailed(c, "headlines", err)
	}
	for i := range rows {
		rows[i].ID = uuid.NewString()
		rows[i].Slug = slug.Make(rows[i].Title)
	}
	if err := replaceAll(s.DB, rows); err != nil {
		return refreshFailed(c, "headlines", err)
	}
	return c.JSON(RefreshResult{Success: true, Message: "headlines refreshed", Count: len(rows)})
}

// SetGameResult records a final score for a scheduled game — the one
// status/score transition games go through outside bulk refresh.
// Settlement picks the game up on its next run (and is nudged here).
func (s *ContentService) SetGameResult(c *fiber.Ctx) error {
	id := c.Params("id")

	var req struct {
		StarsScore    *int `json:"stars_score"`
		OpponentScore *int `json:"opponent_score"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.StarsScore == nil || req.OpponentScore == nil || *req.StarsScore < 0 || *req.OpponentScore < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "both scores are required"})
	}

	var game models.Game
	if err := s.DB.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	err := s.DB.Model(&game).Updates(map[string]interface{}{
		"status":         models.GameStatusFinal,
		"stars_score":    *req.StarsScore,
		"opponent_score": *req.OpponentScore,
	}).Error
	if err != nil {
		log.Printf("[Refresh] failed to finalize game %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save result"})
	}

	if _, err := s.Settler.SettlePredictions(); err != nil {
		log.Printf("[Refresh] settlement after result failed: %v", err)
	}

	return c.JSON(fiber.Map{"message": "result recorded", "game_id": game.ID})
}

// UploadMerchImage stores a merchandise image in the media bucket and
// attaches its URL to the item.
func (s *ContentService) UploadMerchImage(c *fiber.Ctx) error {
	if !utils.MediaReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "media storage not configured"})
	}

	id := c.Params("id")
	var item models.MerchItem
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file required"})
	}

	key := fmt.Sprintf("merch/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
	url, err := utils.UploadImage(fileHeader, key)
	if err != nil {
		log.Printf("[Refresh] merch image upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload failed"})
	}

	if err := s.DB.Model(&item).Update("image_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save image URL"})
	}
	return c.JSON(fiber.Map{"message": "image uploaded", "image_url": url})
}

// --- public reads ---

func (s *ContentService) GetSchedule(c *fiber.Ctx) error {
	var games []models.Game
	if err := s.DB.Order("game_date ASC").Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load schedule"})
	}
	return c.JSON(games)
}

func (s *ContentService) GetStandings(c *fiber.Ctx) error {
	var rows []models.Standing
	if err := s.DB.Order("rank ASC").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load standings"})
	}
	return c.JSON(rows)
}

func (s *ContentService) GetPlayerStats(c *fiber.Ctx) error {
	var rows []models.PlayerStat
	if err := s.DB.Order("points DESC, goals DESC").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load player stats"})
	}
	return c.JSON(rows)
}

func (s *ContentService) GetRoster(c *fiber.Ctx) error {
	var rows []models.RosterPlayer
	if err := s.DB.Order("number ASC").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load roster"})
	}
	return c.JSON(rows)
}

func (s *ContentService) GetMerchandise(c *fiber.Ctx) error {
	var rows []models.MerchItem
	if err := s.DB.Order("name ASC").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load merchandise"})
	}
	return c.JSON(rows)
}

func (s *ContentService) GetHeadlines(c *fiber.Ctx) error {
	var rows []models.Headline
	if err := s.DB.Order("published_at DESC").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load headlines"})
	}
	return c.JSON(rows)
}
