package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tusharsraj1907-hash/AIrena/model"
)

type HackathonController struct {
	DB *gorm.DB
}

func NewHackathonController(db *gorm.DB) *HackathonController {
	return &HackathonController{DB: db}
}

func (hc *HackathonController) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		RegistrationFee int64     `json:"registration_fee"`
		PrizeCurrency   string    `json:"prize_currency"`
		StartsAt        time.Time `json:"starts_at"`
		EndsAt          time.Time `json:"ends_at"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "title required"})
	}
	if body.RegistrationFee < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "registration fee cannot be negative"})
	}

	hackathon := model.Hackathon{
		HostID:          userID,
		Title:           body.Title,
		Description:     body.Description,
		RegistrationFee: body.RegistrationFee,
		PrizeCurrency:   body.PrizeCurrency,
		StartsAt:        body.StartsAt,
		EndsAt:          body.EndsAt,
	}
	if err := hc.DB.Create(&hackathon).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(hackathon)
}

func (hc *HackathonController) List(c *fiber.Ctx) error {
	var list []model.Hackathon
	if err := hc.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if list == nil {
		list = []model.Hackathon{}
	}
	return c.JSON(list)
}

func (hc *HackathonController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var hackathon model.Hackathon
	if err := hc.DB.First(&hackathon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "hackathon not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(hackathon)
}

// Registrations lists who signed up for a hackathon; host only.
func (hc *HackathonController) Registrations(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	userID := c.Locals("user_id").(uint)

	var hackathon model.Hackathon
	if err := hc.DB.First(&hackathon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "hackathon not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if hackathon.HostID != userID {
		return c.Status(404).JSON(fiber.Map{"error": "hackathon not found"})
	}

	var list []model.Registration
	if err := hc.DB.Where("hackathon_id = ?", id).Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if list == nil {
		list = []model.Registration{}
	}
	return c.JSON(list)
}
