package routes

import (
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h Handlers) {
	authRoutes := app.Group("/api/auth")
	authRoutes.Post("/login", h.Auth.LoginAdmin)
}
