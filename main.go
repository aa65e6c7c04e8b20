package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tusharsraj1907-hash/AIrena/cache"
	"github.com/tusharsraj1907-hash/AIrena/config"
	"github.com/tusharsraj1907-hash/AIrena/controller"
	kafkax "github.com/tusharsraj1907-hash/AIrena/kafka"
	"github.com/tusharsraj1907-hash/AIrena/mail"
	"github.com/tusharsraj1907-hash/AIrena/middleware"
	"github.com/tusharsraj1907-hash/AIrena/model"
	"github.com/tusharsraj1907-hash/AIrena/receipt"
	"github.com/tusharsraj1907-hash/AIrena/routes"
	"github.com/tusharsraj1907-hash/AIrena/service"
)

var DB *gorm.DB

func initDB(cfg *config.Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect db:", err)
	}

	if err := DB.AutoMigrate(
		&model.User{},
		&model.Hackathon{},
		&model.Registration{},
		&model.Payment{},
	); err != nil {
		log.Fatal(err)
	}
}

func main() {
	cfg := config.Load()
	initDB(cfg)

	rdb := cache.Connect(cfg.RedisAddr)

	producer := kafkax.NewProducer(cfg.KafkaBroker)
	consumer := kafkax.NewConsumer(cfg.KafkaBroker)
	consumer.Consume("payment.paid", kafkax.PaymentPaidHandler(DB))

	receipts, err := receipt.NewService(cfg.ReceiptsDir)
	if err != nil {
		log.Fatal("failed to init receipts dir:", err)
	}

	mailer := mail.NewSMTPMailer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass, cfg.EmailFrom)

	paymentService := service.NewPaymentService(DB, receipts, mailer, producer, rdb)

	app := fiber.New()
	app.Use(logger.New())

	auth := middleware.AuthRequired(cfg.JWTSecret)

	routes.RegisterAuthRoutes(app, controller.NewAuthController(DB, cfg.JWTSecret), auth)
	routes.RegisterHackathonRoutes(app, controller.NewHackathonController(DB), auth)
	routes.RegisterPaymentRoutes(app, controller.NewPaymentController(paymentService, receipts), auth)

	log.Println("HTTP server running on port " + cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal("fiber error:", err)
	}
}
