package controller

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tusharsraj1907-hash/AIrena/receipt"
	"github.com/tusharsraj1907-hash/AIrena/service"
)

type PaymentController struct {
	Service  *service.PaymentService
	Receipts *receipt.Service
}

func NewPaymentController(svc *service.PaymentService, receipts *receipt.Service) *PaymentController {
	return &PaymentController{
		Service:  svc,
		Receipts: receipts,
	}
}

func (pc *PaymentController) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	resp, err := pc.Service.CreateOrder(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(resp)
}

func (pc *PaymentController) CreateParticipantOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		HackathonID uint `json:"hackathon_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	resp, err := pc.Service.CreateParticipantOrder(userID, body.HackathonID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "hackathon not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(resp)
}

func (pc *PaymentController) VerifyParticipantPayment(c *fiber.Ctx) error {
	var body struct {
		PaymentID         uint   `json:"payment_id"`
		ProviderPaymentID string `json:"provider_payment_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	payment, err := pc.Service.VerifyPayment(body.PaymentID, body.ProviderPaymentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "payment not found"})
		}
		if errors.Is(err, service.ErrVerificationFailed) {
			return c.Status(400).JSON(fiber.Map{"error": "payment verification failed"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(payment)
}

func (pc *PaymentController) History(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	list, err := pc.Service.History(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(list)
}

// DownloadReceipt streams the receipt PDF, generating it on demand when
// it is not on disk yet.
func (pc *PaymentController) DownloadReceipt(c *fiber.Ctx) error {
	paymentID, err := strconv.Atoi(c.Params("paymentId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	userID := c.Locals("user_id").(uint)

	view, err := pc.Service.GetForReceipt(uint(paymentID), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	payment := view.Payment
	if !pc.Receipts.Exists(payment.ID) {
		_, err := pc.Receipts.Generate(payment.ID, receipt.Data{
			ReceiptID:     fmt.Sprint(payment.ID),
			UserName:      view.UserName,
			UserEmail:     view.UserEmail,
			HackathonName: view.HackathonTitle,
			Amount:        payment.Amount,
			Currency:      payment.Currency,
			PaymentDate:   payment.CreatedAt.Format("02/01/2006"),
			PaymentMethod: paymentMethodOr(payment.PaymentMethod),
			Status:        payment.Status,
			InvoiceID:     payment.InvoiceID,
		})
		if err != nil {
			log.Printf("receipt generation failed for payment %d: %v", payment.ID, err)
		}
	}

	if !pc.Receipts.Exists(payment.ID) {
		return c.Status(500).JSON(fiber.Map{"error": "receipt could not be generated"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, payment.InvoiceID))
	return c.SendFile(pc.Receipts.Path(payment.ID))
}

func paymentMethodOr(method string) string {
	if method == "" {
		return "Online"
	}
	return method
}
