package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tusharsraj1907-hash/AIrena/controller"
)

func RegisterAuthRoutes(app *fiber.App, ac *controller.AuthController, authMiddleware fiber.Handler) {
	api := app.Group("/api")
	a := api.Group("/auth")

	a.Post("/register", ac.Register)
	a.Post("/login", ac.Login)
	a.Get("/me", authMiddleware, ac.Me)
}
