// services/settlement_service.go
package services

import (
	"errors"
	"log"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PucksPerCorrectPick is the fixed reward credited per correct
// prediction.
const PucksPerCorrectPick = 5

type SettlementService struct {
	DB *gorm.DB
}

func NewSettlementService(db *gorm.DB) *SettlementService {
	return &SettlementService{DB: db}
}

// GameWinner computes which side won a finalized game. A tie counts
// as an opponent win — the scoring rules award pucks only for outright
// Stars wins, so the tie branch is deliberate, not a fallthrough.
func GameWinner(g models.Game) models.PickedWinner {
	if g.StarsScore == nil || g.OpponentScore == nil {
		return models.PickOpponent
	}
	switch {
	case *g.StarsScore > *g.OpponentScore:
		return models.PickStars
	case *g.OpponentScore > *g.StarsScore:
		return models.PickOpponent
	default: // tie
		return models.PickOpponent
	}
}

// SettlePredictions reconciles every finalized game against its
// outstanding predictions and credits pucks exactly once per
// prediction. Safe to re-run and safe to run concurrently: the award
// is a conditional update that only fires while awarded is still
// false, so a second run (or a racing run) awards zero extra pucks.
// Per-game and per-prediction failures log and continue; untouched
// predictions are retried on the next run.
func (s *SettlementService) SettlePredictions() (int, error) {
	var games []models.Game
	if err := s.DB.Where("status = ?", models.GameStatusFinal).Find(&games).Error; err != nil {
		return 0, err
	}

	awarded := 0
	for _, game := range games {
		if !game.Final() {
			log.Printf("[Settlement] game %s is final but missing scores, skipping", game.ID)
			continue
		}
		n, err := s.settleGame(game)
		if err != nil {
			log.Printf("[Settlement] error settling game %s: %v", game.ID, err)
			continue
		}
		awarded += n
	}

	if awarded > 0 {
		log.Printf("[Settlement] awarded %d prediction(s)", awarded)
	}
	return awarded, nil
}

// errAlreadyAwarded signals that a racing settlement run flipped the
// prediction first. Not a failure, just nothing left to do.
var errAlreadyAwarded = errors.New("prediction already awarded")

func (s *SettlementService) settleGame(game models.Game) (int, error) {
	winner := GameWinner(game)

	var preds []models.Prediction
	if err := s.DB.Where("game_id = ? AND awarded = ?", game.ID, false).Find(&preds).Error; err != nil {
		return 0, err
	}

	awarded := 0
	for _, pred := range preds {
		err := s.awardPrediction(pred, winner)
		switch {
		case err == nil:
			awarded++
		case errors.Is(err, errAlreadyAwarded):
			// Another run got here first.
		default:
			log.Printf("[Settlement] failed to award prediction %s: %v", pred.ID, err)
		}
	}

	return awarded, nil
}

// awardPrediction flips awarded and credits the pucks in one
// transaction, so a failed credit rolls the flag back and the
// prediction stays eligible for the next run. The flip itself is
// conditional: it only wins if awarded is still false at write time,
// so concurrent settlement runs cannot double-pay.
func (s *SettlementService) awardPrediction(pred models.Prediction, winner models.PickedWinner) error {
	correct := pred.PickedWinner == winner

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Prediction{}).
			Where("id = ? AND awarded = ?", pred.ID, false).
			Updates(map[string]interface{}{"awarded": true, "correct": correct})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyAwarded
		}
		if !correct {
			return nil
		}
		return creditUser(tx, pred.UserID)
	})
}

// creditUser applies the commutative increments for one correct
// prediction. Increments, never whole-row writes, so parallel
// settlement and submission flows cannot lose updates. A missing stats
// row (the lazy create at submission time can fail) is created here
// with this prediction already counted.
func creditUser(tx *gorm.DB, userID string) error {
	res := tx.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"pucks":               gorm.Expr("pucks + ?", PucksPerCorrectPick),
			"correct_predictions": gorm.Expr("correct_predictions + ?", 1),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		stats := models.UserStats{
			ID:                 uuid.NewString(),
			UserID:             userID,
			Pucks:              PucksPerCorrectPick,
			CorrectPredictions: 1,
			TotalPredictions:   1,
		}
		return tx.Create(&stats).Error
	}
	return nil
}

// Settle is the on-demand administrative trigger.
func (s *SettlementService) Settle(c *fiber.Ctx) error {
	count, err := s.SettlePredictions()
	if err != nil {
		log.Printf("[Settlement] admin run failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(RefreshResult{
			Success: false,
			Message: "settlement failed: " + err.Error(),
		})
	}
	return c.JSON(RefreshResult{
		Success: true,
		Message: "settlement complete",
		Count:   count,
	})
}
