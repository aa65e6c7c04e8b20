package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tusharsraj1907-hash/AIrena/controller"
)

func RegisterPaymentRoutes(app *fiber.App, pc *controller.PaymentController, authMiddleware fiber.Handler) {
	api := app.Group("/api")
	p := api.Group("/payments")

	p.Post("/create-order", authMiddleware, pc.CreateOrder)
	p.Post("/create-participant-order", authMiddleware, pc.CreateParticipantOrder)
	p.Post("/verify-participant-payment", authMiddleware, pc.VerifyParticipantPayment)
	p.Get("/history", authMiddleware, pc.History)
	p.Get("/receipt/:paymentId", authMiddleware, pc.DownloadReceipt)
}
