package handlers

import (
	"github.com/aidanleach15-hash/shining-stars-sub000/services"
	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App, contentService *services.ContentService) {
	app.Get("/schedule", contentService.GetSchedule)
	app.Get("/standings", contentService.GetStandings)
	app.Get("/stats/players", contentService.GetPlayerStats)
	app.Get("/roster", contentService.GetRoster)
	app.Get("/merchandise", contentService.GetMerchandise)
	app.Get("/headlines", contentService.GetHeadlines)
}
