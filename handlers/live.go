package handlers

import (
	"github.com/aidanleach15-hash/shining-stars-sub000/services"
	"github.com/gofiber/fiber/v2"
)

func SetupLiveRoutes(app *fiber.App, liveGameService *services.LiveGameService) {
	// Polled by every open scoreboard page on a 30s timer.
	app.Get("/live", liveGameService.GetLiveGame)
	app.Get("/live/penalties", liveGameService.ListPenalties)
}
