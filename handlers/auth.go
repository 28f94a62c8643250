package handlers

import (
	"github.com/aidanleach15-hash/shining-stars-sub000/services"
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/auth/register", authService.Register)
	app.Post("/auth/login", authService.Login)

	app.Get("/s/me", authService.Me)
}
