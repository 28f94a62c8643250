package handlers

import (
	"github.com/aidanleach15-hash/shining-stars-sub000/services"
	"github.com/gofiber/fiber/v2"
)

func SetupPredictionRoutes(app *fiber.App, predictionService *services.PredictionService, leaderboardService *services.LeaderboardService) {
	// Public: guests can browse the standings race.
	app.Get("/leaderboard", leaderboardService.GetLeaderboard)

	// Authenticated
	app.Post("/s/predictions", predictionService.SubmitPrediction)
	app.Get("/s/predictions", predictionService.ListMyPredictions)
	app.Get("/s/stats", predictionService.MyStats)
}
