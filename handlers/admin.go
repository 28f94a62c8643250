package handlers

import (
	"github.com/aidanleach15-hash/shining-stars-sub000/middleware"
	"github.com/aidanleach15-hash/shining-stars-sub000/services"
	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes wires the administrative console: idempotent
// refresh operations, settlement, result entry, and penalty upkeep.
// All of it sits behind the admin gate.
func SetupAdminRoutes(app *fiber.App, contentService *services.ContentService,
	settlementService *services.SettlementService, liveGameService *services.LiveGameService) {

	admin := app.Group("/s/admin", middleware.RequireAdmin())

	admin.Post("/refresh/schedule", contentService.RefreshSchedule)
	admin.Post("/refresh/standings", contentService.RefreshStandings)
	admin.Post("/refresh/stats", contentService.RefreshPlayerStats)
	admin.Post("/refresh/roster", contentService.RefreshRoster)
	admin.Post("/refresh/merchandise", contentService.RefreshMerchandise)
	admin.Post("/refresh/headlines", contentService.RefreshHeadlines)
	admin.Post("/refresh/live", liveGameService.RefreshLiveGame)

	admin.Post("/settle", settlementService.Settle)
	admin.Patch("/games/:id/result", contentService.SetGameResult)

	admin.Post("/penalties", liveGameService.AddPenalty)
	admin.Delete("/penalties", liveGameService.ClearPenalties)

	admin.Post("/merchandise/:id/image", contentService.UploadMerchImage)
}
