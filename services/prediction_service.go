// services/prediction_service.go
package services

import (
	"errors"
	"log"

	"github.com/aidanleach15-hash/shining-stars-sub000/middleware"
	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PredictionService struct {
	DB *gorm.DB
}

func NewPredictionService(db *gorm.DB) *PredictionService {
	return &PredictionService{DB: db}
}

// SubmitPrediction upserts the caller's pick for a game, keyed by
// (user, game). Picks can change while the game is still scheduled;
// once the game leaves the scheduled state (or the prediction has been
// awarded) the pick is frozen. TotalPredictions counts distinct
// predictions, so only a first submission increments it.
func (s *PredictionService) SubmitPrediction(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		GameID       string              `json:"game_id"`
		PickedWinner models.PickedWinner `json:"picked_winner"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.PickedWinner != models.PickStars && req.PickedWinner != models.PickOpponent {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "picked_winner must be 'stars' or 'opponent'"})
	}

	var game models.Game
	if err := s.DB.First(&game, "id = ?", req.GameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if game.Status != models.GameStatusScheduled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "predictions are closed for this game"})
	}

	var existing models.Prediction
	err := s.DB.Where("user_id = ? AND game_id = ?", userID, req.GameID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Awarded {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "prediction already settled"})
		}
		if err := s.DB.Model(&existing).Update("picked_winner", req.PickedWinner).Error; err != nil {
			log.Printf("[Predictions] failed to update pick %s: %v", existing.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save prediction"})
		}
		existing.PickedWinner = req.PickedWinner
		return c.JSON(existing)

	case errors.Is(err, gorm.ErrRecordNotFound):
		pred := models.Prediction{
			ID:           uuid.NewString(),
			UserID:       userID,
			GameID:       req.GameID,
			PickedWinner: req.PickedWinner,
		}
		if err := s.DB.Create(&pred).Error; err != nil {
			log.Printf("[Predictions] failed to create prediction for %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save prediction"})
		}
		if err := s.bumpTotal(userID); err != nil {
			log.Printf("[Predictions] failed to bump totals for %s: %v", userID, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pred)

	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
}

// bumpTotal lazily creates the stats row and counts the new
// prediction with an atomic increment.
func (s *PredictionService) bumpTotal(userID string) error {
	if err := s.ensureStats(userID); err != nil {
		return err
	}
	return s.DB.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update("total_predictions", gorm.Expr("total_predictions + ?", 1)).Error
}

func (s *PredictionService) ensureStats(userID string) error {
	var stats models.UserStats
	err := s.DB.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.UserStats{ID: uuid.NewString(), UserID: userID}
		return s.DB.Create(&stats).Error
	}
	return err
}

// ListMyPredictions returns the caller's picks, newest first.
func (s *PredictionService) ListMyPredictions(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var preds []models.Prediction
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&preds).Error; err != nil {
		log.Printf("[Predictions] DB error listing for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load predictions"})
	}
	return c.JSON(preds)
}

// MyStats returns the caller's running totals, zeroed for users who
// have not predicted yet.
func (s *PredictionService) MyStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var stats models.UserStats
	err := s.DB.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(models.UserStats{UserID: userID})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(stats)
}
