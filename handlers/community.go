package handlers

import (
	"github.com/aidanleach15-hash/shining-stars-sub000/services"
	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(app *fiber.App, communityService *services.CommunityService) {
	// Public reads — guests can lurk the feed and the chat.
	app.Get("/posts", communityService.ListPosts)
	app.Get("/chat", communityService.ListChatMessages)

	// Writing requires an account.
	app.Post("/s/posts", communityService.CreatePost)
	app.Delete("/s/posts/:id", communityService.DeletePost)
	app.Post("/s/chat", communityService.SendChatMessage)
}
