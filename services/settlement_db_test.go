package services

import (
	"testing"
	"time"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"gorm.io/gorm"
)

func seedFinalGame(t *testing.T, db *gorm.DB, stars, opponent int) models.Game {
	t.Helper()
	game := models.Game{
		ID:            "game-1",
		GameDate:      time.Now().Add(-3 * time.Hour),
		Opponent:      "Ice Hawks",
		Home:          true,
		Status:        models.GameStatusFinal,
		StarsScore:    intPtr(stars),
		OpponentScore: intPtr(opponent),
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seeding game: %v", err)
	}
	return game
}

func seedPrediction(t *testing.T, db *gorm.DB, id, userID, gameID string, pick models.PickedWinner) {
	t.Helper()
	pred := models.Prediction{ID: id, UserID: userID, GameID: gameID, PickedWinner: pick}
	if err := db.Create(&pred).Error; err != nil {
		t.Fatalf("seeding prediction: %v", err)
	}
}

func loadStats(t *testing.T, db *gorm.DB, userID string) models.UserStats {
	t.Helper()
	var stats models.UserStats
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		t.Fatalf("loading stats for %s: %v", userID, err)
	}
	return stats
}

func TestSettlePredictionsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettlementService(db)

	seedFinalGame(t, db, 4, 2)
	if err := db.Create(&models.UserStats{ID: "stats-1", UserID: "user-1", TotalPredictions: 1}).Error; err != nil {
		t.Fatalf("seeding stats: %v", err)
	}
	seedPrediction(t, db, "pred-1", "user-1", "game-1", models.PickStars)

	awarded, err := svc.SettlePredictions()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if awarded != 1 {
		t.Fatalf("first run awarded %d, want 1", awarded)
	}

	// Re-running must find nothing to do and pay nothing extra.
	awarded, err = svc.SettlePredictions()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("second run awarded %d, want 0", awarded)
	}

	stats := loadStats(t, db, "user-1")
	if stats.Pucks != PucksPerCorrectPick {
		t.Fatalf("pucks = %d, want exactly %d after two runs", stats.Pucks, PucksPerCorrectPick)
	}
	if stats.CorrectPredictions != 1 {
		t.Fatalf("correct_predictions = %d, want 1", stats.CorrectPredictions)
	}
}

func TestSettleIncorrectPickPaysNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettlementService(db)

	seedFinalGame(t, db, 4, 2)
	if err := db.Create(&models.UserStats{ID: "stats-1", UserID: "user-1", TotalPredictions: 1}).Error; err != nil {
		t.Fatalf("seeding stats: %v", err)
	}
	seedPrediction(t, db, "pred-1", "user-1", "game-1", models.PickOpponent)

	awarded, err := svc.SettlePredictions()
	if err != nil {
		t.Fatalf("settlement: %v", err)
	}
	if awarded != 1 {
		t.Fatalf("awarded %d, want 1 (settled, just not paid)", awarded)
	}

	var pred models.Prediction
	if err := db.First(&pred, "id = ?", "pred-1").Error; err != nil {
		t.Fatalf("loading prediction: %v", err)
	}
	if !pred.Awarded || pred.Correct == nil || *pred.Correct {
		t.Fatalf("prediction should be awarded and incorrect: %+v", pred)
	}
	if stats := loadStats(t, db, "user-1"); stats.Pucks != 0 {
		t.Fatalf("pucks = %d, want 0 for an incorrect pick", stats.Pucks)
	}
}

func TestSettleCreatesMissingStatsRow(t *testing.T) {
	// The lazy stats create at submission time can fail; settlement
	// must still land the pucks somewhere.
	db := newTestDB(t)
	svc := NewSettlementService(db)

	seedFinalGame(t, db, 4, 2)
	seedPrediction(t, db, "pred-1", "user-1", "game-1", models.PickStars)

	awarded, err := svc.SettlePredictions()
	if err != nil {
		t.Fatalf("settlement: %v", err)
	}
	if awarded != 1 {
		t.Fatalf("awarded %d, want 1", awarded)
	}

	stats := loadStats(t, db, "user-1")
	if stats.Pucks != PucksPerCorrectPick || stats.CorrectPredictions != 1 || stats.TotalPredictions != 1 {
		t.Fatalf("created stats row should count this prediction: %+v", stats)
	}
}

func TestFailedCreditLeavesPredictionUnsettled(t *testing.T) {
	// The flip and the credit commit together: if the credit fails, the
	// prediction must stay awarded=false so the next run retries it.
	db := newTestDB(t)
	svc := NewSettlementService(db)

	seedFinalGame(t, db, 4, 2)
	seedPrediction(t, db, "pred-1", "user-1", "game-1", models.PickStars)

	if err := db.Exec("DROP TABLE user_stats").Error; err != nil {
		t.Fatalf("breaking stats table: %v", err)
	}

	awarded, err := svc.SettlePredictions()
	if err != nil {
		t.Fatalf("settlement should absorb per-prediction failures: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("awarded %d, want 0 when the credit cannot commit", awarded)
	}

	var pred models.Prediction
	if err := db.First(&pred, "id = ?", "pred-1").Error; err != nil {
		t.Fatalf("loading prediction: %v", err)
	}
	if pred.Awarded {
		t.Fatal("awarded flag must roll back with the failed credit")
	}
}
