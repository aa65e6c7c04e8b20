package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tusharsraj1907-hash/AIrena/controller"
)

func RegisterHackathonRoutes(app *fiber.App, hc *controller.HackathonController, authMiddleware fiber.Handler) {
	api := app.Group("/api")
	h := api.Group("/hackathons")

	h.Get("/", hc.List)
	h.Get("/:id", hc.Get)
	h.Post("/", authMiddleware, hc.Create)
	h.Get("/:id/registrations", authMiddleware, hc.Registrations)
}
