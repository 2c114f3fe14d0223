package routes

import (
	"github.com/gofiber/fiber/v2"
)

func ApplicationRoutes(app *fiber.App, h Handlers) {
	applicationRoutes := app.Group("/api/applications")

	create := []fiber.Handler{h.Applications.CreateApplication}
	if h.SubmitLimiter != nil {
		create = append([]fiber.Handler{h.SubmitLimiter}, create...)
	}
	applicationRoutes.Post("/", create...)

	list := []fiber.Handler{h.Applications.GetApplications}
	if h.ListGuard != nil {
		list = append([]fiber.Handler{h.ListGuard}, list...)
	}
	applicationRoutes.Get("/", list...)
}
